package i18n

var enUS = map[Code]string{
	"UNKNOWN":                          "Something went wrong.",
	"NOT_AUTHENTICATED":                "Log in to continue.",
	"USER_ID_REQUIRED":                 "A user id is required.",
	"USER_NOT_FOUND":                   "User {{.UserID}} was not found.",
	"USER_ALREADY_EXISTS":              "User {{.UserID}} already exists.",
	"AVAILABILITY_MODE_UNKNOWN":        "Unknown availability mode {{.Mode}}.",
	"AVAILABILITY_MODE_ALREADY_ACTIVE": "{{.Mode}} is already active.",
	"AVAILABILITY_SETTINGS_INVALID":    "Invalid settings for {{.Mode}}: {{.Reason}}.",
	"USER_UNAVAILABLE":                 "{{.UserID}} cannot be messaged right now ({{.Status}}).",
	"CONVERSATION_NOT_FOUND":           "No conversation with {{.UserID}}.",
	"CONVERSATION_ALREADY_RATED":       "This conversation was already rated.",
	"CONVERSATION_TIMER_NOT_STARTED":   "Send a message before rating this conversation.",
	"MESSAGE_EMPTY":                    "Message text is empty.",
	"REVIEW_ALREADY_SUBMITTED":         "You already reviewed this user.",
	"REVIEW_RATING_OUT_OF_RANGE":       "Ratings go from 1 to 5 stars.",
	"REVIEW_SELF":                      "You cannot review yourself.",
	"REVIEW_RATER_REQUIRED":            "A reviewer is required.",
	"REVIEWS_HIDDEN":                   "Leave a review to see who rated this user.",
	"SELECTION_LIMIT_REACHED":          "You can select up to {{.Max}} interests.",
	"SELECTION_INVALID":                "Interest {{.Selection}} is not valid.",
}

var ptBR = map[Code]string{
	"UNKNOWN":                          "Algo deu errado.",
	"NOT_AUTHENTICATED":                "Entre para continuar.",
	"USER_ID_REQUIRED":                 "Um id de usuário é obrigatório.",
	"USER_NOT_FOUND":                   "Usuário {{.UserID}} não encontrado.",
	"USER_ALREADY_EXISTS":              "Usuário {{.UserID}} já existe.",
	"AVAILABILITY_MODE_UNKNOWN":        "Modo de disponibilidade desconhecido: {{.Mode}}.",
	"AVAILABILITY_MODE_ALREADY_ACTIVE": "{{.Mode}} já está ativo.",
	"AVAILABILITY_SETTINGS_INVALID":    "Configuração inválida para {{.Mode}}: {{.Reason}}.",
	"USER_UNAVAILABLE":                 "{{.UserID}} não pode receber mensagens agora ({{.Status}}).",
	"CONVERSATION_NOT_FOUND":           "Nenhuma conversa com {{.UserID}}.",
	"CONVERSATION_ALREADY_RATED":       "Esta conversa já foi avaliada.",
	"CONVERSATION_TIMER_NOT_STARTED":   "Envie uma mensagem antes de avaliar esta conversa.",
	"MESSAGE_EMPTY":                    "A mensagem está vazia.",
	"REVIEW_ALREADY_SUBMITTED":         "Você já avaliou este usuário.",
	"REVIEW_RATING_OUT_OF_RANGE":       "As notas vão de 1 a 5 estrelas.",
	"REVIEW_SELF":                      "Você não pode avaliar a si mesmo.",
	"REVIEW_RATER_REQUIRED":            "Um avaliador é obrigatório.",
	"REVIEWS_HIDDEN":                   "Deixe uma avaliação para ver quem avaliou este usuário.",
	"SELECTION_LIMIT_REACHED":          "Você pode escolher até {{.Max}} interesses.",
	"SELECTION_INVALID":                "O interesse {{.Selection}} não é válido.",
}
