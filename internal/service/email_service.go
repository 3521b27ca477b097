package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"mindcare/internal/stats"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail produces
// a disabled service that silently skips every send.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklyReportEmail sends a weekly mood summary to a user
func (s *EmailService) SendWeeklyReportEmail(ctx context.Context, toEmail, toName string, report stats.WeeklyStats) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly report to %s", toEmail)
		return nil
	}

	trendWord := "steady"
	if report.MoodTrend > 0 {
		trendWord = "improving"
	} else if report.MoodTrend < 0 {
		trendWord = "dipping"
	}

	subject := "Your Weekly Mood Summary"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #6b5b95; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.stat { font-size: 24px; font-weight: bold; color: #6b5b95; }
		.button { display: inline-block; padding: 12px 30px; background-color: #6b5b95; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Your Week in Review</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Here's how your week went:</p>
			<ul>
				<li>Average mood: <span class="stat">%.1f</span> out of 5</li>
				<li>Entries logged: <span class="stat">%d</span></li>
				<li>Your mood is <strong>%s</strong> this week</li>
				<li>Positive streak: <span class="stat">%d</span> entries</li>
			</ul>
			<p>Keep checking in with yourself. Every entry counts.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Open Your Journal</a>
			</p>
		</div>
		<div class="footer">
			<p>You're receiving this because weekly summaries are enabled in your profile.</p>
		</div>
	</div>
</body>
</html>
`, toName, report.AverageMood, report.TotalEntries, trendWord, report.StreakDays, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here's how your week went:

- Average mood: %.1f out of 5
- Entries logged: %d
- Your mood is %s this week
- Positive streak: %d entries

Keep checking in with yourself. Every entry counts.

Open your journal: %s

---
You're receiving this because weekly summaries are enabled in your profile.
`, toName, report.AverageMood, report.TotalEntries, trendWord, report.StreakDays, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
