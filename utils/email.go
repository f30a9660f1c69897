package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// BookingConfirmationData feeds the confirmation mail body.
type BookingConfirmationData struct {
	BookingCode        string
	AccommodationTitle string
	CheckInDate        string
	CheckOutDate       string
	Nights             int
	GuestCount         int
	TotalPrice         float64
}

// SendBookingConfirmationEmail mails the guest their booking summary with a
// QR of the booking code. Runs async so it never delays the response.
func SendBookingConfirmationEmail(to string, data BookingConfirmationData) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")
		if host == "" || from == "" {
			log.Printf("SMTP not configured, skip confirmation mail for %s", data.BookingCode)
			return
		}

		port, _ := strconv.Atoi(portStr)

		var body bytes.Buffer
		fmt.Fprintf(&body, "<h2>Booking %s confirmed</h2>", data.BookingCode)
		fmt.Fprintf(&body, "<p>%s</p>", data.AccommodationTitle)
		fmt.Fprintf(&body, "<p>%s → %s (%d nights, %d guests)</p>",
			data.CheckInDate, data.CheckOutDate, data.Nights, data.GuestCount)
		fmt.Fprintf(&body, "<p>Total: %.2f</p>", data.TotalPrice)

		if qrBytes, err := GenerateQRCode(data.BookingCode, 400); err != nil {
			log.Printf("QR generation failed for booking %s: %v", data.BookingCode, err)
		} else {
			fmt.Fprintf(&body, `<img src="data:image/png;base64,%s" alt="booking code"/>`,
				base64.StdEncoding.EncodeToString(qrBytes))
		}

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking confirmation #"+data.BookingCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Failed to send confirmation email: %v", err)
		}
	}()
}
