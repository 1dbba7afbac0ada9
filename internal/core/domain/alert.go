package domain

import "strings"

// AlertSubject is the fixed subject line identifying the product.
const AlertSubject = "SecHelper Robot"

// Alert is a human readable notification produced by a detection rule.
type Alert struct {
	Detector  string
	Recipient string
	Subject   string
	Body      string
	Height    BlockHeight
	TxHashes  []string
}

// NewAlert builds an alert with the product subject line.
func NewAlert(detector, recipient string, height BlockHeight, body string) *Alert {
	return &Alert{
		Detector:  detector,
		Recipient: recipient,
		Subject:   AlertSubject,
		Body:      body,
		Height:    height,
	}
}

// Summary returns the first line of the body, used as a short title by chat transports.
func (a Alert) Summary() string {
	line, _, _ := strings.Cut(a.Body, "\n")
	return line
}
