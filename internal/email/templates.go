package email

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateName selects one of the transactional email bodies
type TemplateName string

const (
	TemplateSubscriptionConfirmed TemplateName = "subscription-confirmed"
	TemplateSubscriptionPastDue   TemplateName = "subscription-past-due"
	TemplateSubscriptionCancelled TemplateName = "subscription-cancelled"
	TemplatePaymentReceipt        TemplateName = "payment-receipt"
	TemplateReminderGentle        TemplateName = "reminder-gentle"
	TemplateReminderFirm          TemplateName = "reminder-firm"
	TemplateReminderUrgent        TemplateName = "reminder-urgent"
	TemplateReminderFinal         TemplateName = "reminder-final"
	TemplateAdminAlert            TemplateName = "admin-alert"
)

var templates = map[TemplateName]*template.Template{
	TemplateSubscriptionConfirmed: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>Your {{.Plan}} subscription is now active. Your invoice allowance has been refreshed for the new billing period.</p>
<p>— Ardent Invoicing</p>`)),

	TemplateSubscriptionPastDue: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>We could not collect payment for your {{.Plan}} subscription. Please update your payment method to keep your account active.</p>
<p>— Ardent Invoicing</p>`)),

	TemplateSubscriptionCancelled: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>Your {{.Plan}} subscription has been cancelled and your account has been moved to the free plan. You can resubscribe at any time.</p>
<p>— Ardent Invoicing</p>`)),

	TemplatePaymentReceipt: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>{{.BusinessName}} has received your payment of {{.Currency}} {{.Amount}} for invoice {{.InvoiceNumber}} (reference {{.Reference}}).</p>
<p>Thank you for your business.</p>`)),

	TemplateReminderGentle: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>A friendly reminder that invoice {{.InvoiceNumber}} for {{.Currency}} {{.Amount}} from {{.BusinessName}} was due on {{.DueDate}}.</p>`)),

	TemplateReminderFirm: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>Invoice {{.InvoiceNumber}} for {{.Currency}} {{.Amount}} from {{.BusinessName}} is now {{.DaysOverdue}} days overdue. Please arrange payment at your earliest convenience.</p>`)),

	TemplateReminderUrgent: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>Invoice {{.InvoiceNumber}} for {{.Currency}} {{.Amount}} from {{.BusinessName}} is {{.DaysOverdue}} days overdue. Please settle it promptly to avoid service interruption.</p>`)),

	TemplateReminderFinal: template.Must(template.New("").Parse(
		`<p>Hi {{.Name}},</p>
<p>This is a final notice for invoice {{.InvoiceNumber}} ({{.Currency}} {{.Amount}}) from {{.BusinessName}}, now {{.DaysOverdue}} days overdue. Further action may be taken if payment is not received.</p>`)),

	TemplateAdminAlert: template.Must(template.New("").Parse(
		`<p>Scheduled job <strong>{{.Job}}</strong> reported {{.ErrorCount}} errors at {{.Timestamp}}.</p>
<pre>{{.Detail}}</pre>`)),
}

// Render fills the named template with data
func Render(name TemplateName, data any) (string, error) {
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
