package mailer

// Message транзакционное письмо
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// SendResponse ответ сервиса на отправку письма
type SendResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки от почтового сервиса
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}
