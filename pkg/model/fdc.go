package model

import "time"

// FDCConfigID is the id of the only FDC configuration row.
const FDCConfigID = 1

// FDCConfig is the connection to the customer's FDC message broker.
type FDCConfig struct {
	ID                    int       `gorm:"column:id;primaryKey" json:"-" yaml:"id"`
	UpdatedTime           time.Time `gorm:"column:updated_time;not null" json:"-" yaml:"updated_time"`
	Host                  string    `gorm:"column:host;not null" json:"host" yaml:"host" validate:"required"`
	VPN                   string    `gorm:"column:vpn;not null" json:"vpn" yaml:"vpn" validate:"required"`
	Topic                 string    `gorm:"column:topic;not null" json:"topic" yaml:"topic" validate:"required"`
	UserName              string    `gorm:"column:user_name;not null" json:"user_name" yaml:"user_name" validate:"required"`
	Password              string    `gorm:"column:password;not null" json:"password" yaml:"password" validate:"required"`
	ClientName            string    `gorm:"column:client_name;not null" json:"client_name" yaml:"client_name" validate:"required"`
	ConnectAttempts       int       `gorm:"column:connect_attempts;not null" json:"connect_attempts" yaml:"connect_attempts"`
	ReconnectAttempts     int       `gorm:"column:reconnect_attempts;not null" json:"reconnect_attempts" yaml:"reconnect_attempts"`
	ReconnectInterval     int       `gorm:"column:reconnect_interval;not null" json:"reconnect_interval" yaml:"reconnect_interval"`
	ConnectRetriesPerHost int       `gorm:"column:connect_retries_per_host;not null" json:"connect_retries_per_host" yaml:"connect_retries_per_host"`
	MessageInterval       int       `gorm:"column:message_interval;not null" json:"message_interval" yaml:"message_interval"`
	SheetPath             string    `gorm:"column:sheet_path;not null" json:"sheet_path" yaml:"sheet_path" validate:"required"`
	FeatureDBURI          string    `gorm:"column:featuredb_uri;not null" json:"featuredb_uri" yaml:"featuredb_uri" validate:"required,url"`
}

func (FDCConfig) TableName() string {
	return "config"
}
