package send_contact_message

// Request модель сообщения формы обратной связи
type Request struct {
	Name    string
	Email   string
	Phone   string // Опционально
	Message string
}
