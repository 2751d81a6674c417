package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository/fake"
)

func TestListServicesJoinsTypeNames(t *testing.T) {
	repo := &fake.ServiceRepo{
		Services: []*model.ClinicService{
			{ID: 1, Name: "General Consultation", TypeID: 1, Price: 30, Status: "Active"},
			{ID: 2, Name: "Orphan Service", TypeID: 9, Price: 10, Status: "Active"},
		},
		Types: []*model.ServiceType{
			{ID: 1, Name: "Consultation"},
		},
	}
	svc := NewService(repo)

	views, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Consultation", views[0].TypeName)
	assert.Equal(t, "Unknown", views[1].TypeName)
}
