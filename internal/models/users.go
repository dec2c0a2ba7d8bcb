package models

// UserRequest - модель для регистрации и аутентификации администратора, приходит извне
type UserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UserData - модель администратора из хранилища
type UserData struct {
	UserID       string
	Login        string
	PasswordHash string
}

// ParamsRequest - модель запроса изменения параметров риск-политики
type ParamsRequest struct {
	LTVBps    int64 `json:"ltv_bps"`
	MaxAmount int64 `json:"max_amount"`
}

// PauseRequest - модель запроса остановки/возобновления авторизаций
type PauseRequest struct {
	Paused bool `json:"paused"`
}
