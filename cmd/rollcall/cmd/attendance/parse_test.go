package attendance

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindergarten/rollcall/pkg/attendance"
	"github.com/kindergarten/rollcall/pkg/errors"
)

func TestParseAbsence(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    absence
		wantErr bool
	}{
		{name: "id only", input: "7", want: absence{ChildID: 7}},
		{name: "type", input: "7=vacation", want: absence{ChildID: 7, Type: attendance.AbsenceVacation}},
		{name: "type and reason", input: "7=sick_leave:high fever", want: absence{ChildID: 7, Type: attendance.AbsenceSickLeave, Reason: "high fever"}},
		{name: "case folded type", input: " 7 = SICK_LEAVE ", want: absence{ChildID: 7, Type: attendance.AbsenceSickLeave}},
		{name: "reason keeps colons", input: "7=other:trip: museum", want: absence{ChildID: 7, Type: attendance.AbsenceOther, Reason: "trip: museum"}},
		{name: "none with reason", input: "7=none:late pickup", want: absence{ChildID: 7, Reason: "late pickup"}},
		{name: "empty type with reason", input: "7=:late pickup", want: absence{ChildID: 7, Reason: "late pickup"}},
		{name: "unknown type", input: "7=holiday", wantErr: true},
		{name: "bad id", input: "abc=vacation", wantErr: true},
		{name: "zero id", input: "0", wantErr: true},
		{name: "reason at limit", input: "7=other:" + strings.Repeat("x", 200), want: absence{ChildID: 7, Type: attendance.AbsenceOther, Reason: strings.Repeat("x", 200)}},
		{name: "reason over limit", input: "7=other:" + strings.Repeat("x", 201), wantErr: true},
		{name: "multibyte reason counts characters", input: "7=sick_leave:" + strings.Repeat("ж", 150), want: absence{ChildID: 7, Type: attendance.AbsenceSickLeave, Reason: strings.Repeat("ж", 150)}},
		{name: "multibyte reason over limit", input: "7=sick_leave:" + strings.Repeat("ж", 201), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAbsence(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, time.May, 2, 23, 30, 0, 0, time.Local)

	tests := []struct {
		input   string
		want    civil.Date
		wantErr bool
	}{
		{input: "", want: civil.Date{Year: 2024, Month: time.May, Day: 2}},
		{input: "today", want: civil.Date{Year: 2024, Month: time.May, Day: 2}},
		{input: "Yesterday", want: civil.Date{Year: 2024, Month: time.May, Day: 1}},
		{input: "2024-02-29", want: civil.Date{Year: 2024, Month: time.February, Day: 29}},
		{input: "2023-02-29", wantErr: true},
		{input: "02/05/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input, now)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPlan(t *testing.T) {
	t.Run("requires an edit", func(t *testing.T) {
		_, err := newPlan(false, nil, nil)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects a child marked both ways", func(t *testing.T) {
		_, err := newPlan(false, []int{3}, []string{"3=vacation"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already marked present")
	})

	t.Run("rejects a child marked absent twice", func(t *testing.T) {
		_, err := newPlan(false, nil, []string{"3", "3=vacation"})
		assert.Error(t, err)
	})

	t.Run("all present alone is enough", func(t *testing.T) {
		p, err := newPlan(true, nil, nil)
		require.NoError(t, err)
		assert.True(t, p.AllPresent)
	})
}

func TestPlanMarks(t *testing.T) {
	r := attendance.New(newMockAPI(nil))
	require.NoError(t, r.Load(t.Context(), 3, civil.Date{Year: 2024, Month: time.May, Day: 2}))
	set := r.Snapshot()

	t.Run("absent overrides all present", func(t *testing.T) {
		p, err := newPlan(true, nil, []string{"3=sick_leave:fever"})
		require.NoError(t, err)

		marks, err := p.marks(set)
		require.NoError(t, err)
		assert.Equal(t, map[int]attendance.Mark{
			1: attendance.Present(),
			2: attendance.Present(),
			3: attendance.Absent(attendance.AbsenceSickLeave, "fever"),
		}, marks)
	})

	t.Run("unknown child", func(t *testing.T) {
		p, err := newPlan(false, []int{99}, nil)
		require.NoError(t, err)

		_, err = p.marks(set)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not on the roster of group 3")
	})
}
