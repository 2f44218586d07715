package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/constants"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// GroupsForTeacher lists the groups led by a teacher.
func (c *Client) GroupsForTeacher(ctx context.Context, teacherID, skip, limit int) ([]Group, error) {
	if teacherID <= 0 {
		return nil, errors.NewValidationError("teacher_id", teacherID, "must be a positive integer")
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}

	query := url.Values{
		"teacher_id": {strconv.Itoa(teacherID)},
		"skip":       {strconv.Itoa(skip)},
		"limit":      {strconv.Itoa(limit)},
	}
	resp, err := c.transport.Get(ctx, pathGroups, query)
	if err != nil {
		return nil, err
	}

	var dtos []GroupDTO
	if err := transport.DecodeResponse(resp, &dtos); err != nil {
		return nil, err
	}
	groups := make([]Group, len(dtos))
	for i, dto := range dtos {
		groups[i] = dto.toGroup()
	}
	return groups, nil
}
