package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestValidate(t *testing.T) {
	ok := models.Service{Name: "Gel manicure", Duration: 45, Price: 35, Category: "Manicure"}
	assert.NoError(t, Validate(&ok))

	free := ok
	free.Price = 0
	assert.NoError(t, Validate(&free))

	cases := map[string]struct {
		mutate func(*models.Service)
		want   error
	}{
		"short":    {func(s *models.Service) { s.Duration = 10 }, ErrInvalidDuration},
		"negative": {func(s *models.Service) { s.Price = -1 }, ErrInvalidPrice},
		"category": {func(s *models.Service) { s.Category = "Massage" }, ErrInvalidCategory},
		"name":     {func(s *models.Service) { s.Name = "  " }, ErrNameRequired},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := ok
			tc.mutate(&s)
			assert.ErrorIs(t, Validate(&s), tc.want)
		})
	}
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("Liquid Gel (Hard Gel - UV Gel)"))
	assert.False(t, IsCategory("manicure"))
}
