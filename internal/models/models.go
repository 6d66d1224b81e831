package models

type ContactStatus string

const (
	StatusNew         ContactStatus = "New"
	StatusMessageSent ContactStatus = "Message Sent"
)

// Contact is a phone number the operator intends to reach
type Contact struct {
	ID     uint          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Number string        `gorm:"type:varchar(10);not null;uniqueIndex" json:"number"`
	Status ContactStatus `gorm:"type:varchar(20);not null;default:'New'" json:"status"`
}

func (Contact) TableName() string {
	return "contacts"
}

// QuickReply is a named, reusable message body
type QuickReply struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Text string `gorm:"type:text;not null" json:"text"`
}

func (QuickReply) TableName() string {
	return "quick_replies"
}

// QuickReplyPatch carries a partial update; nil fields are left untouched.
type QuickReplyPatch struct {
	Name *string `json:"name"`
	Text *string `json:"text"`
}

func (p QuickReplyPatch) Empty() bool {
	return p.Name == nil && p.Text == nil
}
