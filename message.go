package jiramarkup

import (
	"fmt"
	"io"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/jhillyerd/enmime/v2"
)

// Message is a mail message reduced to what a ticket needs
type Message struct {
	Subject     string
	FromName    string
	FromAddress string
	Date        time.Time
	Body        string
	Attachments []Attachment
}

// Attachment describes a file attached to a Message
type Attachment struct {
	Name     string
	MimeType string
	Size     int
	Content  []byte
}

// ReadMessage parses an RFC 822 message and converts its body to Jira markup.
// The HTML part is preferred over the plain text part.
func ReadMessage(r io.Reader) (*Message, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("read mime message: %w", err)
	}
	for _, perr := range env.Errors {
		debugLog("", "mime message has errors", "error", perr.Error())
	}

	m := &Message{
		Subject: env.GetHeader("Subject"),
	}

	if from, err := env.AddressList("From"); err == nil && len(from) != 0 {
		m.FromName = from[0].Name
		m.FromAddress = from[0].Address
	}
	if date, err := env.Date(); err == nil {
		m.Date = date
	}

	if len(env.HTML) != 0 {
		m.Body = Body("html", env.HTML)
	} else {
		m.Body = Body("text", env.Text)
	}

	for _, a := range env.Attachments {
		m.Attachments = append(m.Attachments, Attachment{
			Name:     a.FileName,
			MimeType: a.ContentType,
			Size:     len(a.Content),
			Content:  a.Content,
		})
	}

	debugLog("", "read message", "subject", m.Subject, "attachments", len(m.Attachments))
	return m, nil
}

// Sender returns the sender as "Name <address>", or just the address when
// the message carries no display name
func (m Message) Sender() string {
	if m.FromName == "" || m.FromName == m.FromAddress {
		return m.FromAddress
	}
	return fmt.Sprintf("%s <%s>", m.FromName, m.FromAddress)
}

// Description returns the ticket description for m: a short header naming
// the sender, date and subject, a rule, the converted body and, when there
// are any, the list of attachments.
func (m Message) Description() string {
	subject := m.Subject
	if subject == "" {
		subject = "No Subject"
	}
	received := ""
	if !m.Date.IsZero() {
		received = m.Date.Format(time.RFC3339)
	}

	d := strings.Builder{}
	d.WriteString(fmt.Sprintf("*Original Email from:* %s\n", m.Sender()))
	d.WriteString(fmt.Sprintf("*Received:* %s\n", received))
	d.WriteString(fmt.Sprintf("*Subject:* %s\n\n", subject))
	d.WriteString(rule + "\n\n")
	d.WriteString(m.Body + "\n")

	if len(m.Attachments) != 0 {
		d.WriteString(fmt.Sprintf("\n*Attachments (%d):*\n", len(m.Attachments)))
		for _, a := range m.Attachments {
			d.WriteString(fmt.Sprintf("%c %s\n", markerUnordered, a))
		}
	}

	return d.String()
}

// String returns a formatted string representation of an Attachment
func (a Attachment) String() string {
	return fmt.Sprintf("%s (%s %s)", a.Name, a.MimeType, humanize.Bytes(uint64(a.Size)))
}
