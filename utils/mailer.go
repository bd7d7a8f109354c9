package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	if sesClient == nil {
		return nil // mailer not configured; treated as best-effort
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(to string, displayName string) error {
	subject := "Welcome to Fit Buddy"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Log your weight daily and share your friend code to compare progress with friends.", displayName)
	return sendEmail(to, subject, body)
}

// SendFriendAddedEmail tells a user someone linked to their data by code.
func SendFriendAddedEmail(to string, adderName string) error {
	subject := "Someone added you on Fit Buddy"
	body := fmt.Sprintf("%s added you as a friend using your friend code. They can now see your progress in their comparison view.", adderName)
	return sendEmail(to, subject, body)
}
