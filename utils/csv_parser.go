package utils

import (
	"fmt"
	"strings"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
)

// CertificateRow is one validated, normalized CSV row. RecipientEmail is nil
// when the row had no email.
type CertificateRow struct {
	RecipientName  string
	RecipientEmail *string
	EventType      string
	EventName      string
}

// ParseCertificateCSV turns raw CSV text into validated certificate rows.
// Expected format: a header line followed by
// recipient_name,recipient_email,event_type,event_name rows. Blank lines are
// skipped. Every failed row is reported, tagged with its 1-based line number
// in the original input (the header is row 1), and a single bad row fails
// the whole batch: callers fix the file in one pass instead of one error at
// a time.
func ParseCertificateCSV(raw string) ([]CertificateRow, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: CSV must contain header row and at least one data row", apperror.ErrMalformedInput)
	}

	var rows []CertificateRow
	var rowErrs []apperror.RowError

	fail := func(rowNumber int, message string) {
		rowErrs = append(rowErrs, apperror.RowError{Row: rowNumber, Message: message})
	}

	for i, line := range lines[1:] {
		rowNumber := i + 2

		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitCSVLine(line)
		if len(fields) < 4 {
			fail(rowNumber, "Incomplete data (expected 4 columns)")
			continue
		}

		recipientName, recipientEmail, eventType, eventName := fields[0], fields[1], fields[2], fields[3]

		if recipientName == "" {
			fail(rowNumber, "Recipient name is required")
			continue
		}

		eventType = strings.ToLower(eventType)
		if eventType != "workshop" && eventType != "course" {
			fail(rowNumber, "Event type must be 'workshop' or 'course'")
			continue
		}

		if eventName == "" {
			fail(rowNumber, "Event name is required")
			continue
		}

		if recipientEmail != "" && !IsValidEmail(recipientEmail) {
			fail(rowNumber, "Invalid email format")
			continue
		}

		row := CertificateRow{
			RecipientName: recipientName,
			EventType:     eventType,
			EventName:     eventName,
		}
		if recipientEmail != "" {
			row.RecipientEmail = &recipientEmail
		}
		rows = append(rows, row)
	}

	if len(rowErrs) > 0 {
		return nil, &apperror.ValidationError{Rows: rowErrs}
	}

	return rows, nil
}

// splitCSVLine splits one line on commas, honoring double-quoted fields: a
// quoted field may contain commas, and a doubled quote inside quotes is an
// escaped literal quote. Fields are trimmed of surrounding whitespace.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}
