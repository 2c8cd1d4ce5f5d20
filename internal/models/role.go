package models

type Role struct {
	ID   uint   `gorm:"column:role_id;primaryKey" json:"role_id"`
	Name string `gorm:"column:role_name;size:50;uniqueIndex;not null" json:"role_name"`
}

type Permission struct {
	ID          uint   `gorm:"column:permission_id;primaryKey" json:"permission_id"`
	Name        string `gorm:"column:permission_name;size:100;uniqueIndex;not null" json:"permission_name"`
	Description string `gorm:"column:permission_description;size:255" json:"permission_description"`
}

type RolePermission struct {
	RoleID       uint `gorm:"column:role_id;primaryKey;autoIncrement:false" json:"role_id"`
	PermissionID uint `gorm:"column:permission_id;primaryKey;autoIncrement:false" json:"permission_id"`
}

func (RolePermission) TableName() string { return "role_permissions" }
