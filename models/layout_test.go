package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutSection_UnmarshalProductCollection(t *testing.T) {
	data := []byte(`{
		"section_id": "s1",
		"title": "New in",
		"section_type": "PRODUCT_COLLECTION",
		"display_order": 3,
		"location_id": "loc-1",
		"layout": {"style": "CAROUSEL", "shape": "ROUNDED", "size": "120x160"},
		"source": {
			"type": "PRODUCT_COLLECTION",
			"collection_mode": "MANUAL_SELECTION",
			"product_ids": ["p1", "p2"],
			"manualSelectionsByLocation": {"loc-1": ["p9"]},
			"criteria_limit": 4
		},
		"link_behavior": {"type": "PRODUCT_LIST", "target": "new"}
	}`)

	var s LayoutSection
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Equal(t, "s1", s.SectionID)
	assert.Equal(t, SectionTypeProductCollection, s.SectionType)
	assert.Equal(t, 3.0, s.DisplayOrder)
	require.NotNil(t, s.LocationID)
	assert.Equal(t, "loc-1", *s.LocationID)
	assert.Equal(t, LayoutStyleCarousel, s.Layout.Style)
	require.NotNil(t, s.LinkBehavior)
	assert.Equal(t, ClickActionProductList, s.LinkBehavior.Type)

	src, ok := s.Source.(ProductCollectionSource)
	require.True(t, ok)
	assert.Equal(t, CollectionModeManualSelection, src.CollectionMode)
	assert.Equal(t, []string{"p1", "p2"}, src.ProductIDs)
	assert.Equal(t, []string{"p9"}, src.ManualSelectionsByLocation["loc-1"])
	assert.Equal(t, 4, src.CriteriaLimit)
}

func TestLayoutSection_DisplayOrderFallsBackToZero(t *testing.T) {
	cases := map[string]string{
		"missing": `{"section_id":"a","section_type":"BANNER_MEDIA","layout":{"style":"BANNER"}}`,
		"string":  `{"section_id":"a","section_type":"BANNER_MEDIA","display_order":"first","layout":{"style":"BANNER"}}`,
		"null":    `{"section_id":"a","section_type":"BANNER_MEDIA","display_order":null,"layout":{"style":"BANNER"}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			var s LayoutSection
			require.NoError(t, json.Unmarshal([]byte(data), &s))
			assert.Equal(t, 0.0, s.DisplayOrder)
			assert.Nil(t, s.Source)
		})
	}
}

func TestProductCollectionSource_LenientCriteriaNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"integer", `7`, 7},
		{"fraction truncates", `7.9`, 7},
		{"numeric string", `"12"`, 12},
		{"padded string", `" 5 "`, 5},
		{"word", `"ten"`, 0},
		{"null", `null`, 0},
		{"bool", `true`, 0},
		{"object", `{"n":3}`, 0},
		{"out of range", `1e300`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := `{"type":"PRODUCT_COLLECTION","collection_mode":"BY_CRITERIA","criteria_type":"NEW_ARRIVALS",` +
				`"criteria_timeframe_days":` + tt.value + `,"criteria_limit":` + tt.value + `}`
			source, err := DecodeContentSource(json.RawMessage(data))
			require.NoError(t, err)

			src, ok := source.(ProductCollectionSource)
			require.True(t, ok)
			assert.Equal(t, tt.want, src.CriteriaTimeframeDays)
			assert.Equal(t, tt.want, src.CriteriaLimit)
			assert.Equal(t, CriteriaNewArrivals, src.CriteriaType)
		})
	}
}

func TestLayoutSection_EmptyLocationIsGlobal(t *testing.T) {
	var s LayoutSection
	require.NoError(t, json.Unmarshal([]byte(`{"section_id":"a","location_id":"","layout":{"style":"GRID"}}`), &s))
	assert.Nil(t, s.LocationID)
}

func TestLayoutSection_UnknownSourceRoundTrip(t *testing.T) {
	data := []byte(`{"section_id":"x","section_type":"BASE_CATEGORY","display_order":1,"layout":{"style":"GRID"},"source":{"type":"MANUAL_PRODUCT_SET","ids":["a"]}}`)

	var s LayoutSection
	require.NoError(t, json.Unmarshal(data, &s))

	unknown, ok := s.Source.(UnknownSource)
	require.True(t, ok)
	assert.Equal(t, "MANUAL_PRODUCT_SET", unknown.Type)
	assert.False(t, SourceMatchesType(s.SectionType, s.Source))

	encoded, err := json.Marshal(s)
	require.NoError(t, err)

	var back LayoutSection
	require.NoError(t, json.Unmarshal(encoded, &back))
	assert.Equal(t, s.Source.SourceType(), back.Source.SourceType())
	assert.JSONEq(t, `{"type":"MANUAL_PRODUCT_SET","ids":["a"]}`, string(back.Source.(UnknownSource).Raw))
}

func TestLayoutSection_MarshalKeepsDiscriminant(t *testing.T) {
	s := LayoutSection{
		SectionID:   "c",
		SectionType: SectionTypeBaseCategory,
		Layout:      LayoutStyleConfig{Style: LayoutStyleIconRow},
		Source:      CategorySource{IDs: []string{"c1"}},
	}
	encoded, err := json.Marshal(s)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &generic))
	source := generic["source"].(map[string]interface{})
	assert.Equal(t, "BASE_CATEGORY", source["type"])
	assert.Equal(t, []interface{}{"c1"}, source["ids"])
	assert.Nil(t, generic["location_id"])
}

func TestDecodeLayout(t *testing.T) {
	t.Run("null document", func(t *testing.T) {
		layout, errs := DecodeLayout([]byte("null"))
		assert.Empty(t, layout)
		assert.NotNil(t, layout)
		assert.Empty(t, errs)
	})

	t.Run("not an array", func(t *testing.T) {
		layout, errs := DecodeLayout([]byte(`{"section_id":"a"}`))
		assert.Empty(t, layout)
		assert.Len(t, errs, 1)
	})

	t.Run("bad section is dropped", func(t *testing.T) {
		data := []byte(`[
			{"section_id":"ok","section_type":"TAG_GROUP_NAV","layout":{"style":"ICON_ROW"},"source":{"type":"TAG_GROUP_NAV","ids":["t1"]}},
			{"section_id":"bad","section_type":"PRODUCT_COLLECTION","layout":{"style":"GRID"},"source":{"type":"PRODUCT_COLLECTION","product_ids":"p1"}}
		]`)
		layout, errs := DecodeLayout(data)
		require.Len(t, layout, 1)
		assert.Equal(t, "ok", layout[0].SectionID)
		assert.Len(t, errs, 1)
	})
}

func TestSourceMatchesType(t *testing.T) {
	assert.True(t, SourceMatchesType(SectionTypeBannerMedia, nil))
	assert.False(t, SourceMatchesType(SectionTypeBannerMedia, CategorySource{}))
	assert.True(t, SourceMatchesType(SectionTypeBaseCategory, CategorySource{}))
	assert.False(t, SourceMatchesType(SectionTypeBaseCategory, ProductCollectionSource{}))
	assert.True(t, SourceMatchesType(SectionTypeTagGroupNav, TagGroupSource{}))
	assert.True(t, SourceMatchesType(SectionTypeProductCollection, ProductCollectionSource{}))
	assert.False(t, SourceMatchesType(SectionTypeProductCollection, nil))
	assert.False(t, SourceMatchesType(SectionType("HERO"), CategorySource{}))
}
