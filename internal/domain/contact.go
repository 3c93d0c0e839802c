package domain

// ContactMessage сообщение из формы обратной связи
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string // Опционально
	Message string
}
