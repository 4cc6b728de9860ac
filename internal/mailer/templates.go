package mailer

import (
	"fmt"
	"html"
)

// OperatorNotification builds the email sent to the site operator when the
// contact form is submitted. Reply-To is set to the submitter so the operator
// can answer directly.
func OperatorNotification(from, operator, name, email, message string) Message {
	return Message{
		From:    from,
		To:      []string{operator},
		ReplyTo: email,
		Subject: fmt.Sprintf("New contact message from %s", name),
		HTML: fmt.Sprintf(
			"<h2>New contact form submission</h2><p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p>",
			html.EscapeString(name), html.EscapeString(email), html.EscapeString(message)),
	}
}

// AutoReply builds the thank-you email sent back to the submitter.
func AutoReply(from, operator, name, email string) Message {
	return Message{
		From:    from,
		To:      []string{email},
		Subject: "Thanks for getting in touch",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thanks for your message. I usually reply within a day or two.</p><p>If it is urgent you can reach me directly at %s.</p>",
			html.EscapeString(name), html.EscapeString(operator)),
	}
}
