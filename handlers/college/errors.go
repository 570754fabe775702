package college

import "errors"

var (
	errAdminNotFound   = errors.New("admin account not found")
	errAdminWrongRole  = errors.New("admin account must hold the college admin role")
	errStorageDisabled = errors.New("logo storage is not configured")
)
