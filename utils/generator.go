package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const certIDPrefix = "GDGOC"
const certIDSuffixLength = 5
const certIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCertificateID returns an identifier like GDGOC-20240101-A1B2C:
// fixed prefix, local date, 5-char uppercase alphanumeric suffix. The suffix
// is collision-resistant, not unique; the database unique index on
// certificates.unique_id is the actual backstop. Uses the global math/rand
// source, which is safe for concurrent requests.
func GenerateCertificateID() string {
	suffix := make([]byte, certIDSuffixLength)
	for i := range suffix {
		suffix[i] = certIDCharset[rand.Intn(len(certIDCharset))]
	}
	return fmt.Sprintf("%s-%s-%s", certIDPrefix, time.Now().Format("20060102"), suffix)
}
