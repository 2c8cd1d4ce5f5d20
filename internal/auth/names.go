package auth

// Permission names checked by the HTTP layer.
const (
	PermAppointmentCreate      = "appointment_create"
	PermAppointmentReadAll     = "appointment_read_all"
	PermAppointmentReadSingle  = "appointment_read_single"
	PermAppointmentUpdate      = "appointment_update"
	PermAppointmentDelete      = "appointment_delete"
	PermAppointmentConfirmDeny = "appointment_confirm_deny"

	PermLogsReadAll = "logs_read_all"
	PermLogsArchive = "logs_archive"

	PermPermissionCreate  = "permission_create"
	PermPermissionDelete  = "permission_delete"
	PermPermissionReadAll = "permission_read_all"

	PermRoleCreate  = "role_create"
	PermRoleReadAll = "role_read_all"
	PermRoleUpdate  = "role_update"
	PermRoleDelete  = "role_delete"

	PermStaffCreate     = "staff_create"
	PermStaffDelete     = "staff_delete"
	PermStaffReadAll    = "staff_read_all"
	PermStaffReadSingle = "staff_read_single"
	PermStaffUpdate     = "staff_update"
	PermVerifyPassword  = "verify_password"

	PermClientCreate     = "client_create"
	PermClientDelete     = "client_delete"
	PermClientReadAll    = "client_read_all"
	PermClientReadSingle = "client_read_single"
	PermClientUpdate     = "client_update"

	PermServiceCreate     = "service_create"
	PermServiceDelete     = "service_delete"
	PermServiceReadAll    = "service_read_all"
	PermServiceReadSingle = "service_read_single"
	PermServiceUpdate     = "service_update"
)

// AllPermissions is seeded into new databases and granted to Admin.
var AllPermissions = []string{
	PermAppointmentCreate, PermAppointmentReadAll, PermAppointmentReadSingle,
	PermAppointmentUpdate, PermAppointmentDelete, PermAppointmentConfirmDeny,
	PermLogsReadAll, PermLogsArchive,
	PermPermissionCreate, PermPermissionDelete, PermPermissionReadAll,
	PermRoleCreate, PermRoleReadAll, PermRoleUpdate, PermRoleDelete,
	PermStaffCreate, PermStaffDelete, PermStaffReadAll, PermStaffReadSingle, PermStaffUpdate,
	PermVerifyPassword,
	PermClientCreate, PermClientDelete, PermClientReadAll, PermClientReadSingle, PermClientUpdate,
	PermServiceCreate, PermServiceDelete, PermServiceReadAll, PermServiceReadSingle, PermServiceUpdate,
}
