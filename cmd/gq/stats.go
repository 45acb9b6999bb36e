package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/jsonsift/jsonsift/document"
)

// geoStats summarizes the features of a GeoJSON FeatureCollection.
type geoStats struct {
	features   int
	withID     int
	geometries map[string]int
	properties map[string]int
}

// collectStats walks the features of a FeatureCollection document.  Every
// feature must carry a geometry object with a string type; properties and id
// are optional.
func collectStats(doc *document.Value) (*geoStats, error) {
	features := doc.Member("features")
	if features == nil || features.Kind() != document.Array {
		return nil, errors.New("document has no features array")
	}
	stats := &geoStats{
		features:   features.Len(),
		geometries: map[string]int{},
		properties: map[string]int{},
	}
	for i, feature := range features.Elems() {
		geometry := feature.Member("geometry")
		if geometry == nil {
			return nil, errors.Errorf("feature %d has no geometry", i)
		}
		if geometry.Kind() != document.Object {
			return nil, errors.Errorf("feature %d: geometry is not an object", i)
		}
		geometryType := geometry.Member("type")
		if geometryType == nil {
			return nil, errors.Errorf("feature %d: geometry has no type", i)
		}
		if geometryType.Kind() != document.String {
			return nil, errors.Errorf("feature %d: geometry type is not a string", i)
		}
		stats.geometries[geometryType.Str()]++

		if feature.HasMember("id") {
			stats.withID++
		}
		for _, prop := range feature.Member("properties").Members() {
			stats.properties[prop.Key]++
		}
	}
	return stats, nil
}

var headingColor = color.New(color.FgCyan, color.Bold)

func printStats(w io.Writer, stats *geoStats) {
	headingColor.Fprintf(w, "Features:")
	fmt.Fprintf(w, " %d", stats.features)
	if stats.withID > 0 {
		fmt.Fprintf(w, " (%d with id)", stats.withID)
	}
	fmt.Fprintln(w)

	headingColor.Fprintln(w, "Geometries:")
	printHistogram(w, stats.geometries)

	headingColor.Fprintln(w, "Properties:")
	printHistogram(w, stats.properties)
}

func printHistogram(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %5d: %s\n", counts[name], name)
	}
}
