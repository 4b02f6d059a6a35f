package ndbc

import (
	"fmt"
	"reflect"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Decode opens a downloaded netCDF file and produces the normalized tabular
// result. The underlying file handle is closed on every path. Any file the
// library cannot parse propagates as a decode failure; there is no partial
// recovery.
func Decode(path string) (*BuoyDataset, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer group.Close()
	return decodeGroup(group)
}

func decodeGroup(g api.Group) (*BuoyDataset, error) {
	timeVals, timeName, err := coordinateValues(g, "time")
	if err != nil {
		return nil, err
	}
	latVals, latName, err := coordinateValues(g, "latitude", "lat")
	if err != nil {
		return nil, err
	}
	lonVals, lonName, err := coordinateValues(g, "longitude", "lon")
	if err != nil {
		return nil, err
	}

	tc, err := newTimeCoordinate(timeVals)
	if err != nil {
		return nil, err
	}
	lats, ok := flattenFloats(latVals)
	if !ok {
		return nil, fmt.Errorf("decode: %s coordinate is not numeric", latName)
	}
	lons, ok := flattenFloats(lonVals)
	if !ok {
		return nil, fmt.Errorf("decode: %s coordinate is not numeric", lonName)
	}

	dims := map[string]bool{timeName: true, latName: true, lonName: true}

	ds := &BuoyDataset{
		Meta:      map[string]VariableMeta{},
		Data:      map[string]Column{},
		TimeCount: tc.len(),
		LatCount:  len(lats),
		LonCount:  len(lons),
	}

	for _, name := range g.ListVariables() {
		if dims[name] {
			continue
		}
		vg, err := g.GetVarGetter(name)
		if err != nil {
			return nil, err
		}
		values, err := vg.Values()
		if err != nil {
			return nil, err
		}
		col, err := newColumn(values)
		if err != nil {
			return nil, fmt.Errorf("decode: variable %s: %w", name, err)
		}
		// The first measured variable fixes the canonical row count; the
		// format guarantees all variables share it, so it is not re-checked.
		if ds.Rows == 0 {
			ds.Rows = col.Len()
		}

		attrs := vg.Attributes()
		ds.Meta[name] = VariableMeta{
			Name:           name,
			Precision:      vg.Type(),
			Units:          attrString(attrs, "units"),
			LongName:       attrString(attrs, "long_name"),
			MissingValue:   missingValue(attrs),
			HasAddOffset:   attrPresent(attrs, "add_offset"),
			HasScaleFactor: attrPresent(attrs, "scale_factor"),
		}
		ds.Variables = append(ds.Variables, name)
		ds.Data[name] = col
	}

	if ds.Rows == 0 {
		ds.Rows = ds.TimeCount * ds.LatCount * ds.LonCount
	}

	ds.Data["time"] = Column{Strings: broadcastTimes(tc.canonical(), ds.Rows)}
	ds.Data["lat"] = Column{Floats: broadcastLats(lats, ds.TimeCount, ds.LonCount)}
	ds.Data["lon"] = Column{Floats: broadcastLons(lons, ds.TimeCount, ds.LatCount)}
	return ds, nil
}

// coordinateValues returns the raw coordinate array for the first of the
// given names present in the group. NDBC files always carry time, latitude
// (or lat) and longitude (or lon) coordinates.
func coordinateValues(g api.Group, names ...string) (interface{}, string, error) {
	for _, name := range names {
		v, err := g.GetVariable(name)
		if err == nil && v != nil {
			return v.Values, name, nil
		}
	}
	return nil, "", fmt.Errorf("decode: missing coordinate variable %q", names[0])
}

// timeCoordinate holds the raw time axis in whichever of the two mutually
// exclusive representations the file uses: numeric seconds since the Unix
// epoch, or ISO-8601 strings.
type timeCoordinate struct {
	epochs []float64
	stamps []string
}

func newTimeCoordinate(values interface{}) (timeCoordinate, error) {
	if stamps, ok := flattenStrings(values); ok {
		return timeCoordinate{stamps: stamps}, nil
	}
	if epochs, ok := flattenFloats(values); ok {
		return timeCoordinate{epochs: epochs}, nil
	}
	return timeCoordinate{}, fmt.Errorf("decode: time coordinate has unsupported type %T", values)
}

func (tc timeCoordinate) len() int {
	if tc.stamps != nil {
		return len(tc.stamps)
	}
	return len(tc.epochs)
}

// canonical converts the time axis to ISO-8601 UTC timestamps of the form
// YYYY-MM-DDTHH:MM:SSZ.
func (tc timeCoordinate) canonical() []string {
	if tc.epochs != nil {
		out := make([]string, len(tc.epochs))
		for i, v := range tc.epochs {
			out[i] = time.Unix(int64(v), 0).UTC().Format(time.RFC3339)
		}
		return out
	}
	out := make([]string, len(tc.stamps))
	for i, s := range tc.stamps {
		out[i] = canonicalStamp(s)
	}
	return out
}

var stampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func canonicalStamp(s string) string {
	for _, layout := range stampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	// Unparseable stamps pass through untouched.
	return s
}

// newColumn converts a raw variable array into a typed column: string arrays
// stay strings, every numeric shape flattens to float64.
func newColumn(values interface{}) (Column, error) {
	if s, ok := flattenStrings(values); ok {
		return Column{Strings: s}, nil
	}
	if f, ok := flattenFloats(values); ok {
		return Column{Floats: f}, nil
	}
	return Column{}, fmt.Errorf("unsupported array type %T", values)
}

// flattenFloats flattens an arbitrarily nested numeric array into a single
// float64 slice, in storage order. The netCDF library returns
// multidimensional variables as nested slices ([][][]float32 and the like).
func flattenFloats(values interface{}) ([]float64, bool) {
	out := []float64{}
	if !appendFloats(&out, reflect.ValueOf(values)) {
		return nil, false
	}
	return out, true
}

func appendFloats(out *[]float64, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !appendFloats(out, rv.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Interface, reflect.Ptr:
		return appendFloats(out, rv.Elem())
	case reflect.Float32, reflect.Float64:
		*out = append(*out, rv.Float())
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		*out = append(*out, float64(rv.Int()))
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*out = append(*out, float64(rv.Uint()))
		return true
	default:
		return false
	}
}

func flattenStrings(values interface{}) ([]string, bool) {
	if s, ok := values.(string); ok {
		return []string{s}, true
	}
	out := []string{}
	if !appendStrings(&out, reflect.ValueOf(values)) {
		return nil, false
	}
	return out, true
}

func appendStrings(out *[]string, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !appendStrings(out, rv.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Interface, reflect.Ptr:
		return appendStrings(out, rv.Elem())
	case reflect.String:
		*out = append(*out, rv.String())
		return true
	default:
		return false
	}
}

// broadcastTimes repeats each timestamp rows/len(stamps) times contiguously,
// giving time-major row order.
func broadcastTimes(stamps []string, rows int) []string {
	out := make([]string, 0, rows)
	if len(stamps) == 0 {
		return out
	}
	per := rows / len(stamps)
	for _, s := range stamps {
		for i := 0; i < per; i++ {
			out = append(out, s)
		}
	}
	return out
}

// broadcastLats repeats each latitude lonCount times and tiles the result
// across timeCount, so latitude is the middle axis of the expansion.
//
// Lon-minor storage order is an NDBC dataset convention, not something the
// file format itself guarantees.
func broadcastLats(lats []float64, timeCount, lonCount int) []float64 {
	out := make([]float64, 0, timeCount*len(lats)*lonCount)
	for t := 0; t < timeCount; t++ {
		for _, lat := range lats {
			for x := 0; x < lonCount; x++ {
				out = append(out, lat)
			}
		}
	}
	return out
}

// broadcastLons tiles the full longitude sequence latCount times per time
// step, making longitude the fastest-varying axis.
func broadcastLons(lons []float64, timeCount, latCount int) []float64 {
	out := make([]float64, 0, timeCount*latCount*len(lons))
	for i := 0; i < timeCount*latCount; i++ {
		out = append(out, lons...)
	}
	return out
}

func attrString(attrs api.AttributeMap, key string) string {
	if attrs == nil {
		return ""
	}
	if v, ok := attrs.Get(key); ok {
		return fmt.Sprint(v)
	}
	return ""
}

func attrPresent(attrs api.AttributeMap, key string) bool {
	if attrs == nil {
		return false
	}
	_, ok := attrs.Get(key)
	return ok
}

// missingValue reports the variable's missing-value sentinel, preferring the
// missing_value attribute over _FillValue.
func missingValue(attrs api.AttributeMap) string {
	if v := attrString(attrs, "missing_value"); v != "" {
		return v
	}
	return attrString(attrs, "_FillValue")
}
