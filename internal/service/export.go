package service

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/popeskul/sms-messaging/internal/models"
)

var auditCSVHeader = []string{
	"Date/Time", "Type", "Direction", "Recipient Name", "Phone Number", "Email", "Message Body",
	"Status", "Sent By", "Twilio SID", "Error Code", "Error Message", "Batch ID",
}

var optOutCSVHeader = []string{
	"Phone Number", "Recipient Name", "Email", "Opted Out At", "Method", "Notes",
}

// WriteAuditCSV renders records in the compliance export layout. Every field
// is quoted; timestamps are RFC 3339 in UTC.
func WriteAuditCSV(w io.Writer, records []models.AuditRecord) error {
	cw := newQuotedWriter(w)
	cw.write(auditCSVHeader)
	for _, r := range records {
		cw.write([]string{
			formatTime(r.Timestamp),
			string(r.Type),
			string(r.Direction),
			r.RecipientName,
			r.Phone,
			r.Email,
			r.Body,
			string(r.Status),
			r.SentBy,
			r.CarrierSID,
			r.ErrorCode,
			r.ErrorMessage,
			r.BatchID,
		})
	}
	return cw.flush()
}

// WriteOptOutCSV renders the opt-out history export.
func WriteOptOutCSV(w io.Writer, entries []*models.OptOutEntry) error {
	cw := newQuotedWriter(w)
	cw.write(optOutCSVHeader)
	for _, e := range entries {
		name := strings.TrimSpace(strings.TrimSpace(e.FirstName.String) + " " + strings.TrimSpace(e.LastName.String))
		cw.write([]string{
			e.Phone,
			name,
			e.Email.String,
			formatTime(e.OptedOutAt),
			string(e.Method),
			e.Notes.String,
		})
	}
	return cw.flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// quotedWriter always quotes, which encoding/csv only does on demand.
type quotedWriter struct {
	w   *bufio.Writer
	err error
}

func newQuotedWriter(w io.Writer) *quotedWriter {
	return &quotedWriter{w: bufio.NewWriter(w)}
}

func (q *quotedWriter) write(fields []string) {
	if q.err != nil {
		return
	}
	for i, field := range fields {
		if i > 0 {
			if q.err = q.w.WriteByte(','); q.err != nil {
				return
			}
		}
		if _, q.err = q.w.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`); q.err != nil {
			return
		}
	}
	q.err = q.w.WriteByte('\n')
}

func (q *quotedWriter) flush() error {
	if q.err != nil {
		return fmt.Errorf("failed to write csv: %w", q.err)
	}
	if err := q.w.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
