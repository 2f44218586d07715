package api

import (
	"github.com/kindergarten/rollcall/internal/utils/ptr"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

// User is the authenticated account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// IsTeacher reports whether the user has the teacher role.
func (u User) IsTeacher() bool {
	return u.Role == "teacher"
}

// Group is a kindergarten group.
type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeacherID   int    `json:"teacher_id,omitempty"`
	TeacherName string `json:"teacher_name,omitempty"`
	AgeMin      int    `json:"age_min,omitempty"`
	AgeMax      int    `json:"age_max,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

func (u UserResponse) toUser() User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    ptr.Deref(u.Phone),
		Role:     u.Role,
	}
}

func (g GroupDTO) toGroup() Group {
	group := Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: ptr.Deref(g.Description),
		TeacherID:   ptr.Deref(g.TeacherID),
		AgeMin:      ptr.Deref(g.AgeMin),
		AgeMax:      ptr.Deref(g.AgeMax),
		Capacity:    ptr.Deref(g.Capacity),
	}
	if g.Teacher != nil {
		group.TeacherName = g.Teacher.FullName
		if group.TeacherID == 0 {
			group.TeacherID = g.Teacher.ID
		}
	}
	return group
}

func (c ChildDTO) toChild(groupID int) attendance.Child {
	child := attendance.Child{ID: c.ID, FullName: c.FullName, GroupID: groupID}
	if c.GroupID != nil {
		child.GroupID = *c.GroupID
	}
	return child
}

func (r AttendanceRecordDTO) toRecord() attendance.Record {
	return attendance.Record{
		ChildID:       r.ChildID,
		Present:       r.Present,
		AbsenceType:   attendance.ParseAbsenceType(ptr.Deref(r.AbsenceType)),
		AbsenceReason: ptr.Deref(r.AbsenceReason),
	}
}

func toRecords(dtos []AttendanceRecordDTO) []attendance.Record {
	records := make([]attendance.Record, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.toRecord()
	}
	return records
}

func toBulkDTO(req attendance.BulkRequest) BulkAttendanceCreateDTO {
	items := make([]BulkAttendanceItemDTO, len(req.Items))
	for i, rec := range req.Items {
		item := BulkAttendanceItemDTO{ChildID: rec.ChildID, Present: rec.Present}
		if rec.AbsenceType != attendance.AbsenceNone {
			item.AbsenceType = ptr.String(string(rec.AbsenceType))
		}
		if rec.AbsenceReason != "" {
			item.AbsenceReason = ptr.String(rec.AbsenceReason)
		}
		items[i] = item
	}
	return BulkAttendanceCreateDTO{
		GroupID:        req.GroupID,
		Date:           req.Date.String(),
		AttendanceList: items,
	}
}
