// Package mailer 封装 SMTP 邮件发送
package mailer

import (
	"gopkg.in/gomail.v2"
)

// Config SMTP 配置
type Config struct {
	Enable   bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer 邮件发送器
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

// NewMailer 创建 Mailer 实例，未启用时返回 nil
func NewMailer(c Config) *Mailer {
	if !c.Enable {
		return nil
	}
	return &Mailer{
		config: c,
		dialer: gomail.NewDialer(c.Host, c.Port, c.Username, c.Password),
	}
}

// Send 发送一封纯文本邮件
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
