package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/validator"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// reCAPTCHAトークンの検証
type RecaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// お問い合わせメール送信
type Mailer interface {
	Send(ctx context.Context, subject string, plainText string, replyTo string) error
}

type ContactUsecase struct {
	verifier RecaptchaVerifier
	mailer   Mailer
}

func NewContactUsecase(verifier RecaptchaVerifier, mailer Mailer) *ContactUsecase {
	return &ContactUsecase{
		verifier: verifier,
		mailer:   mailer,
	}
}

type ContactInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// SendMessage は検証→reCAPTCHA→メール送信の順。
// 送信失敗の詳細はログに残し、呼び出し元には一般的なメッセージだけ返す。
func (u *ContactUsecase) SendMessage(ctx context.Context, in ContactInput) error {
	res := validator.ContactSchema().SafeParse(map[string]string{
		"name":            in.Name,
		"email":           in.Email,
		"subject":         in.Subject,
		"message":         in.Message,
		"recaptcha_token": in.RecaptchaToken,
	})
	if !res.OK {
		return NewValidationError(res.Errors)
	}

	ok, err := u.verifier.Verify(ctx, in.RecaptchaToken)
	if err != nil {
		slog.Error("recaptcha verification failed", "error", err)
		return NewHTTPError(http.StatusBadGateway, "Failed to send message")
	}
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "reCAPTCHA verification failed")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = "New contact form message"
	}

	body := "From: " + res.Data["name"] + " <" + res.Data["email"] + ">\n\n" + res.Data["message"]

	if err := u.mailer.Send(ctx, subject, body, res.Data["email"]); err != nil {
		slog.Error("failed to send contact mail", "error", err)
		return NewHTTPError(http.StatusBadGateway, "Failed to send message")
	}

	return nil
}

// VerifyToken は/api/recaptcha/verify用。
func (u *ContactUsecase) VerifyToken(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, NewHTTPError(http.StatusBadRequest, "token required")
	}

	ok, err := u.verifier.Verify(ctx, token)
	if err != nil {
		slog.Error("recaptcha verification failed", "error", err)
		return false, NewHTTPError(http.StatusBadGateway, "verification unavailable")
	}
	return ok, nil
}

// =====================
// Google siteverify実装
// =====================

type googleRecaptcha struct {
	secret string
	http   *http.Client
}

// secretが空ならデモモード（常にtrue）。
func NewGoogleRecaptcha(cfg config.Config) RecaptchaVerifier {
	return &googleRecaptcha{
		secret: cfg.RecaptchaSecret,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *googleRecaptcha) Verify(ctx context.Context, token string) (bool, error) {
	if g.secret == "" {
		slog.Info("recaptcha secret not set, skipping verification")
		return true, nil
	}

	form := url.Values{}
	form.Set("secret", g.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://www.google.com/recaptcha/api/siteverify",
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return false, err
	}

	return out.Success, nil
}

// =====================
// SendGrid実装
// =====================

type sendgridMailer struct {
	apiKey     string
	adminEmail string
	fromEmail  string
}

// APIキーが空ならデモモード（ログに残すだけ）。
func NewSendGridMailer(cfg config.Config) Mailer {
	return &sendgridMailer{
		apiKey:     cfg.SendGridAPIKey,
		adminEmail: cfg.AdminEmail,
		fromEmail:  cfg.FromEmail,
	}
}

func (m *sendgridMailer) Send(ctx context.Context, subject string, plainText string, replyTo string) error {
	if m.apiKey == "" {
		slog.Info("sendgrid api key not set, mail not sent", "subject", subject)
		return nil
	}

	from := mail.NewEmail("Storefront", m.fromEmail)
	to := mail.NewEmail("", m.adminEmail)

	message := mail.NewSingleEmail(from, subject, to, plainText, "")
	if replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &StatusCodeError{Code: resp.StatusCode}
	}

	return nil
}

type StatusCodeError struct {
	Code int
}

func (e *StatusCodeError) Error() string {
	return "sendgrid status " + strconv.Itoa(e.Code)
}
