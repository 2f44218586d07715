package api

// Wire representations of the kindergarten API. Field names follow the
// backend's snake_case JSON; optional values are pointers so null and
// missing can be told apart from zero values.

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login"`
}

// TeacherSimpleDTO is the teacher embedded in a group.
type TeacherSimpleDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// GroupDTO is a kindergarten group.
type GroupDTO struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	TeacherID   *int              `json:"teacher_id"`
	Teacher     *TeacherSimpleDTO `json:"teacher"`
	AgeMin      *int              `json:"age_min"`
	AgeMax      *int              `json:"age_max"`
	Capacity    *int              `json:"capacity"`
}

// ChildDTO is a roster member.
type ChildDTO struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	GroupID  *int   `json:"group_id"`
}

// AttendanceRecordDTO is a stored attendance record.
type AttendanceRecordDTO struct {
	ID            *int    `json:"id,omitempty"`
	ChildID       int     `json:"child_id"`
	Date          string  `json:"date"`
	Present       bool    `json:"present"`
	AbsenceReason *string `json:"absence_reason"`
	AbsenceType   *string `json:"absence_type"`
}

// BulkAttendanceItemDTO is one child in a bulk save.
type BulkAttendanceItemDTO struct {
	ChildID       int     `json:"child_id"`
	Present       bool    `json:"present"`
	AbsenceReason *string `json:"absence_reason"`
	AbsenceType   *string `json:"absence_type"`
}

// BulkAttendanceCreateDTO is the bulk save request body.
type BulkAttendanceCreateDTO struct {
	GroupID        int                     `json:"group_id"`
	Date           string                  `json:"date"`
	AttendanceList []BulkAttendanceItemDTO `json:"attendance_list"`
}
