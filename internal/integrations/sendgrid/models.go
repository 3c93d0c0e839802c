package sendgrid

// Options параметры отправителя
type Options struct {
	FromEmail    string // Подтвержденный в SendGrid адрес отправителя
	FromName     string
	ContactTo    string // Ящик, куда пересылаются сообщения формы обратной связи
	BusinessName string
}
