package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ben xe my dinh", Normalize("Bến Xe Mỹ Đình"))
	assert.Equal(t, "ho chi minh", Normalize("Hồ Chí Minh"))
	assert.Equal(t, "da nang", Normalize("ĐÀ NẴNG"))
}

func TestNormalize_DecomposedInput(t *testing.T) {
	// "Bến" and "Thành" with combining marks instead of precomposed letters
	assert.Equal(t, "ben", Normalize("Be\u0302\u0301n"))
	assert.Equal(t, "thanh pho", Normalize("Tha\u0300nh pho\u0302\u0301"))
	assert.Equal(t, "BXMD", StationCode("Be\u0302\u0301n xe Mỹ Đình", nil))
	assert.Equal(t, "TR-HCMHN", TripCode("Tha\u0300nh pho\u0302\u0301 Hồ Chí Minh - Hà Nội", nil))
}

func TestStationCode(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"Bến xe Hà Nội", nil, "BXHN"},
		{"Bến xe Hà Nội", []string{"BXHN"}, "BXHN01"},
		{"Bến xe Hà Nội", []string{"BXHN", "BXHN01"}, "BXHN02"},
		{"Bến xe Miền Đông", nil, "BXMD"},
		{"Giáp Bát", nil, "BXGB"},
		{"Bến xe", nil, "BX"},
		{"Bến xe Bắc Xuân", nil, "BX"},
		{"", nil, ""},
		{"   ", nil, "BX"},
		{"   ", []string{"BX"}, "BX01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StationCode(tc.name, tc.existing), "name=%q existing=%v", tc.name, tc.existing)
	}
}

func TestStationCode_Deterministic(t *testing.T) {
	existing := []string{"BXMD", "BXMD01"}
	first := StationCode("Bến Xe Mỹ Đình", existing)
	second := StationCode("Bến Xe Mỹ Đình", existing)
	assert.Equal(t, first, second)
	assert.Equal(t, "BXMD02", first)
}

func TestRouteCode(t *testing.T) {
	assert.Equal(t, "ROU-HCMHN", RouteCode("Hồ Chí Minh", "Hà Nội", nil))
	assert.Equal(t, "ROU-HCMHN", RouteCode("Thành phố Hồ Chí Minh", "Hà Nội", nil))
	assert.Equal(t, "ROU-HCMHN-01", RouteCode("Hồ Chí Minh", "Hà Nội", []string{"ROU-HCMHN"}))
	assert.Equal(t, "", RouteCode("", "Hà Nội", nil))
	assert.Equal(t, "ROU", RouteCode(" ", "Thành phố", nil))
}

func TestTripCode(t *testing.T) {
	assert.Equal(t, "TR-HNHP", TripCode("Hà Nội - Hải Phòng", nil))
	assert.Equal(t, "TR-HNHP-02", TripCode("Hà Nội - Hải Phòng", []string{"TR-HNHP", "TR-HNHP-01"}))
	assert.Equal(t, "TR-HCMDL", TripCode("Thành phố Hồ Chí Minh - Tỉnh Đà Lạt", nil))
	assert.Equal(t, "TR", TripCode("Thành phố", nil))
	assert.Equal(t, "TR", TripCode(" - ", nil))
	assert.Equal(t, "", TripCode("", nil))
}

func TestRouteName(t *testing.T) {
	assert.Equal(t, "Bến xe Mỹ Đình - Bến xe Nước Ngầm", RouteName("Bến xe Mỹ Đình", " Bến xe Nước Ngầm "))
	assert.Equal(t, "A", RouteName("A", ""))
}
