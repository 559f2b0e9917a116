package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingCreated(ctx context.Context, ownerEmail, renterName, carName string) error {
	body := fmt.Sprintf("%s requested to rent your car %s. Review the booking in your dashboard.", renterName, carName)
	return s.send(ownerEmail, "New booking request", body)
}

func (s *emailService) SendRentalConfirmed(ctx context.Context, renterEmail, carName string) error {
	body := fmt.Sprintf("Your booking for %s is confirmed. You can pick it up at the scheduled start time.", carName)
	return s.send(renterEmail, "Booking confirmed", body)
}

func (s *emailService) SendRentalCancelled(ctx context.Context, ownerEmail, renterName, carName, reason string) error {
	body := fmt.Sprintf("%s cancelled the booking for %s.", renterName, carName)
	if reason != "" {
		body += fmt.Sprintf(" Reason: %s", reason)
	}
	return s.send(ownerEmail, "Booking cancelled", body)
}

func (s *emailService) SendRentalCompleted(ctx context.Context, email, carName string, totalPrice int64) error {
	body := fmt.Sprintf("The rental of %s is complete. Total: %d VND.", carName, totalPrice)
	return s.send(email, "Rental completed", body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, renterEmail, carName string) error {
	body := fmt.Sprintf("Your rental of %s is past its end date. Please return the car or contact the owner to extend.", carName)
	return s.send(renterEmail, "Rental overdue", body)
}

func (s *emailService) SendPaymentReceived(ctx context.Context, ownerEmail, carName string, amount int64) error {
	body := fmt.Sprintf("A payment of %d VND for %s was confirmed. Your share will be settled shortly.", amount, carName)
	return s.send(ownerEmail, "Payment received", body)
}
