package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TourWatch/internal/model"
	pkgerrors "TourWatch/pkg/errors"
)

func TestEFirTransitionsForwardOnly(t *testing.T) {
	// 合法路径：pending -> filed -> resolved
	assert.NoError(t, CanTransitionEFir(model.EFirStatusPending, model.EFirStatusFiled))
	assert.NoError(t, CanTransitionEFir(model.EFirStatusFiled, model.EFirStatusResolved))

	// pending 直接到 resolved 被拒绝
	assert.ErrorIs(t,
		CanTransitionEFir(model.EFirStatusPending, model.EFirStatusResolved),
		pkgerrors.EFirTransitionInvalid,
	)

	// 不允许回退
	assert.ErrorIs(t,
		CanTransitionEFir(model.EFirStatusFiled, model.EFirStatusPending),
		pkgerrors.EFirTransitionInvalid,
	)
	assert.ErrorIs(t,
		CanTransitionEFir(model.EFirStatusResolved, model.EFirStatusFiled),
		pkgerrors.EFirTransitionInvalid,
	)

	// resolved 是终态
	assert.ErrorIs(t,
		CanTransitionEFir(model.EFirStatusResolved, model.EFirStatusResolved),
		pkgerrors.EFirTransitionInvalid,
	)

	// 非法目标状态
	assert.ErrorIs(t,
		CanTransitionEFir(model.EFirStatusPending, model.EFirStatus("Filed")),
		pkgerrors.EFirStatusInvalid,
	)
}

func TestIncidentTransitionMatrix(t *testing.T) {
	open := []model.IncidentStatus{
		model.IncidentStatusPending,
		model.IncidentStatusActive,
		model.IncidentStatusInReview,
	}

	// 未了结的事件可以在任意状态间切换，包括直接 resolved
	for _, from := range open {
		for _, to := range open {
			assert.NoError(t, CanTransitionIncident(from, to), "%s -> %s", from, to)
		}
		assert.NoError(t, CanTransitionIncident(from, model.IncidentStatusResolved))
	}

	// resolved 之后不允许任何流转
	for _, to := range open {
		assert.ErrorIs(t,
			CanTransitionIncident(model.IncidentStatusResolved, to),
			pkgerrors.IncidentResolved,
		)
	}

	// 非法目标状态优先报 INCIDENT_STATUS_INVALID
	assert.ErrorIs(t,
		CanTransitionIncident(model.IncidentStatusPending, model.IncidentStatus("closed")),
		pkgerrors.IncidentStatusInvalid,
	)
}

func TestParseTouristID(t *testing.T) {
	id, err := ParseTouristID("123456789")
	assert.NoError(t, err)
	assert.Equal(t, int64(123456789), id)

	for _, raw := range []string{"", "abc", "-1", "0", "12.5"} {
		_, err := ParseTouristID(raw)
		assert.ErrorIs(t, err, pkgerrors.InvalidTouristID, "input %q", raw)
	}
}
