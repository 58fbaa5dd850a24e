package notificacao

import "time"

type Notificacao struct {
	ID        int64     `gorm:"primaryKey"`
	UsuarioID int64     `gorm:"column:usuario_id;not null;index"`
	Mensagem  string    `gorm:"column:mensagem;not null"`
	Lida      bool      `gorm:"column:lida;default:false"`
	Link      string    `gorm:"column:link"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Notificacao) TableName() string {
	return "notificacoes"
}
