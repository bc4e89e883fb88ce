package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/logging"

	"github.com/google/uuid"
)

const (
	loanApprovalPath  = "/api/emails/loan-approval"
	loanRejectedPath  = "/api/emails/loan-rejected"
	pendingDigestPath = "/api/emails/pending-digest"
	deactivatedPath   = "/api/emails/account-deactivated"

	noticeDateLayout = "02-01-2006"
)

// EmailNotifier posts form-encoded requests to the email service
type EmailNotifier struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
	enabled bool
}

// NewEmailNotifier creates a notifier for cfg.Notify.EmailServiceURL.
// An empty URL yields a disabled notifier that only logs.
func NewEmailNotifier(cfg *config.Config, logger logging.Logger) *EmailNotifier {
	return &EmailNotifier{
		baseURL: cfg.Notify.EmailServiceURL,
		client:  &http.Client{Timeout: cfg.NotifyTimeout()},
		logger:  logger.With("component", "email_notifier"),
		enabled: cfg.Notify.EmailServiceURL != "",
	}
}

// IsEnabled checks if notification is enabled
func (n *EmailNotifier) IsEnabled() bool {
	return n.enabled
}

// LoanApproved sends the approval email for a decided loan
func (n *EmailNotifier) LoanApproved(ctx context.Context, notice DecisionNotice) error {
	return n.post(ctx, loanApprovalPath, decisionForm(notice))
}

// LoanRejected sends the rejection email for a decided loan
func (n *EmailNotifier) LoanRejected(ctx context.Context, notice DecisionNotice) error {
	return n.post(ctx, loanRejectedPath, decisionForm(notice))
}

// PendingDigest sends the pending-queue summary to an administrator
func (n *EmailNotifier) PendingDigest(ctx context.Context, notice DigestNotice) error {
	data := url.Values{}
	data.Set("to", notice.To)
	data.Set("pendingCount", strconv.FormatInt(notice.PendingCount, 10))
	if notice.OldestLoanID != 0 {
		data.Set("oldestApplicationId", applicationID(notice.OldestLoanID))
	}
	data.Set("generatedAt", notice.GeneratedAt.Format(time.RFC3339))

	return n.post(ctx, pendingDigestPath, data)
}

// AccountDeactivated tells a customer their account was switched off
func (n *EmailNotifier) AccountDeactivated(ctx context.Context, notice AccountNotice) error {
	data := url.Values{}
	data.Set("to", notice.CustomerEmail)
	data.Set("customerName", notice.CustomerName)
	data.Set("accountNumber", notice.AccountNumber)

	return n.post(ctx, deactivatedPath, data)
}

func (n *EmailNotifier) post(ctx context.Context, path string, data url.Values) error {
	if !n.enabled {
		n.logger.Info(ctx, "email service not configured, notification skipped", "path", path, "to", data.Get("to"))
		return nil
	}

	notificationID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return domain.Wrap(domain.KindNotifyFailure, "build notification request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Notification-ID", notificationID)

	resp, err := n.client.Do(req)
	if err != nil {
		return domain.Wrap(domain.KindNotifyFailure, "send notification", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Wrap(domain.KindNotifyFailure, "send notification",
			fmt.Errorf("%w: email service returned %d", domain.ErrNotificationFailed, resp.StatusCode))
	}

	n.logger.Info(ctx, "notification sent", "path", path, "to", data.Get("to"), "notification_id", notificationID)
	return nil
}

func decisionForm(notice DecisionNotice) url.Values {
	loan := notice.Loan
	amount := formatAmount(loan.RequestedAmount)

	data := url.Values{}
	data.Set("to", notice.CustomerEmail)
	data.Set("customerName", notice.CustomerName)
	data.Set("loanType", formatLoanType(string(loan.LoanType)))
	data.Set("requestedAmount", amount)
	data.Set("loanAmount", amount)
	data.Set("applicationId", applicationID(loan.ID))
	data.Set("applicationDate", loan.AppliedAt.Format(noticeDateLayout))
	if loan.Remarks != nil {
		data.Set("remarks", *loan.Remarks)
	}
	return data
}

func applicationID(id uint) string {
	return "APP" + strconv.FormatUint(uint64(id), 10)
}

// formatLoanType turns PERSONAL_LOAN into "Personal Loan"
func formatLoanType(raw string) string {
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(raw, "_", " ")))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatAmount renders an amount with thousands separators, e.g. ₹1,250,000.00
func formatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "₹" + b.String() + "." + frac
}
