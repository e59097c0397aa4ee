package note

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRowGetSetCoversEveryDomain(t *testing.T) {
	row := GridRow{Date: "5/4"}

	for i, d := range Domains {
		row.Set(d, float64(i)+0.5)
	}
	for i, d := range Domains {
		assert.Equal(t, float64(i)+0.5, row.Get(d), "domain %s", d)
	}

	// Unknown domains read zero and write nowhere.
	assert.Zero(t, row.Get(Domain("Sleep")))
	before := row
	row.Set(Domain("Sleep"), 9)
	assert.Equal(t, before, row)
}

func TestGridRowJSONKeys(t *testing.T) {
	row := GridRow{Date: "5/4", Mobility: 2, WoundCare: 1.5}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	// Chart consumers key columns by these exact capitalized names.
	for _, key := range []string{"Date", "Mobility", "WoundCare", "MedicalStability", "Swallowing", "Education", "SocialSupport"} {
		assert.Contains(t, m, key)
	}
}
