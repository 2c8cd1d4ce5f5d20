package models

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{
		&Role{},
		&Permission{},
		&RolePermission{},
		&Staff{},
		&Client{},
		&Service{},
		&Appointment{},
		&ChangeLog{},
		&AppointmentHistory{},
	}
}
