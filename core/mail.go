package core

import "net/mail"

type (
	// EmailMessage is a plain-text mail handed to an EmailService.
	// The notification compiler produces the body; services only transport it.
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Subject string
		Body    string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages sequentially and returns the first
		// transport failure. It never mutates the messages.
		SendMessages(messages ...*EmailMessage) error
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.Body != "" }

// ToAddresses wraps bare email strings into mail.Address values.
func ToAddresses(emails []string) []mail.Address {
	addrs := make([]mail.Address, 0, len(emails))
	for _, e := range emails {
		addrs = append(addrs, mail.Address{Address: e})
	}
	return addrs
}
