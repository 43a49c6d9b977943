package carrier

import (
	"bytes"
	"encoding/xml"
)

// TwiML renders the XML acknowledgement returned to carrier webhooks. An
// empty message produces a silent acknowledgement.
func TwiML(message string) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if message == "" {
		buf.WriteString("<Response></Response>")
		return buf.Bytes()
	}

	buf.WriteString("<Response><Message>")
	_ = xml.EscapeText(&buf, []byte(message))
	buf.WriteString("</Message></Response>")
	return buf.Bytes()
}
