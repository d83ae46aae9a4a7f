package report

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/mailer"
)

var errReportDelivery = apperror.New(
	apperror.CodeInternalError,
	"failed to send report",
	http.StatusInternalServerError,
)

// Reporter identifies the user filing the issue; it is stamped into the
// outgoing email.
type Reporter struct {
	Name  string
	Email string
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	SendIssue(ctx context.Context, reporter Reporter, req ReportIssueRequest) error
}

type service struct {
	mail         mailer.Mailer
	supportEmail string
	logger       *zap.Logger
}

func NewService(mail mailer.Mailer, supportEmail string, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{mail: mail, supportEmail: supportEmail, logger: l}
}

func (s *service) SendIssue(ctx context.Context, reporter Reporter, req ReportIssueRequest) error {
	msg := mailer.Message{
		To:      s.supportEmail,
		Subject: fmt.Sprintf("[REPORT] %s - %s", req.Category, req.Subject),
		HTML: fmt.Sprintf(
			"<h2>New Issue Reported</h2>"+
				"<p><strong>User:</strong> %s (%s)</p>"+
				"<p><strong>Category:</strong> %s</p>"+
				"<p><strong>Subject:</strong> %s</p>"+
				"<p><strong>Description:</strong></p><p>%s</p>",
			reporter.Name, reporter.Email, req.Category, req.Subject,
			strings.ReplaceAll(req.Description, "\n", "<br>"),
		),
	}

	if err := s.mail.Send(msg); err != nil {
		s.logger.Error("report email failed",
			zap.String("reporter", reporter.Email),
			zap.String("category", req.Category),
			zap.Error(err),
		)
		return errReportDelivery
	}

	s.logger.Info("report email sent",
		zap.String("reporter", reporter.Email),
		zap.String("category", req.Category),
	)
	return nil
}
