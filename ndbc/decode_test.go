package ndbc

import (
	"fmt"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	. "github.com/smartystreets/goconvey/convey"
)

// Minimal in-memory stand-ins for the netCDF reader interfaces.

type fakeAttrs struct {
	keys []string
	vals map[string]interface{}
}

func newFakeAttrs(pairs ...interface{}) *fakeAttrs {
	a := &fakeAttrs{vals: map[string]interface{}{}}
	for i := 0; i < len(pairs); i += 2 {
		k := pairs[i].(string)
		a.keys = append(a.keys, k)
		a.vals[k] = pairs[i+1]
	}
	return a
}

func (a *fakeAttrs) Keys() []string { return a.keys }

func (a *fakeAttrs) Get(key string) (interface{}, bool) {
	v, ok := a.vals[key]
	return v, ok
}

func (a *fakeAttrs) GetType(key string) (string, bool) {
	_, ok := a.vals[key]
	return "string", ok
}

func (a *fakeAttrs) GetGoType(key string) (string, bool) {
	_, ok := a.vals[key]
	return "string", ok
}

type fakeVar struct {
	values interface{}
	dims   []string
	attrs  api.AttributeMap
	typ    string
}

func (v *fakeVar) Len() int64 { return 0 }
func (v *fakeVar) Values() (interface{}, error) { return v.values, nil }
func (v *fakeVar) GetSlice(_, _ int64) (interface{}, error) { return v.values, nil }
func (v *fakeVar) GetSliceMD(_, _ []int64) (interface{}, error) { return v.values, nil }
func (v *fakeVar) Shape() []int64 { return nil }
func (v *fakeVar) Dimensions() []string { return v.dims }
func (v *fakeVar) Attributes() api.AttributeMap { return v.attrs }
func (v *fakeVar) Type() string { return v.typ }
func (v *fakeVar) GoType() string { return v.typ }

type fakeGroup struct {
	order []string
	vars  map[string]*fakeVar
}

func (g *fakeGroup) Close() {}
func (g *fakeGroup) Attributes() api.AttributeMap { return newFakeAttrs() }
func (g *fakeGroup) ListVariables() []string { return g.order }

func (g *fakeGroup) GetVariable(name string) (*api.Variable, error) {
	v, ok := g.vars[name]
	if !ok {
		return nil, fmt.Errorf("no such variable %q", name)
	}
	return &api.Variable{Values: v.values, Dimensions: v.dims, Attributes: v.attrs}, nil
}

func (g *fakeGroup) GetVarGetter(name string) (api.VarGetter, error) {
	v, ok := g.vars[name]
	if !ok {
		return nil, fmt.Errorf("no such variable %q", name)
	}
	return v, nil
}

func (g *fakeGroup) ListSubgroups() []string { return nil }
func (g *fakeGroup) GetGroup(string) (api.Group, error) { return nil, fmt.Errorf("no subgroups") }
func (g *fakeGroup) ListTypes() []string { return nil }
func (g *fakeGroup) GetType(string) (string, bool) { return "", false }
func (g *fakeGroup) GetGoType(string) (string, bool) { return "", false }
func (g *fakeGroup) ListDimensions() []string { return nil }
func (g *fakeGroup) GetDimension(string) (uint64, bool) { return 0, false }

func windGroup() *fakeGroup {
	return &fakeGroup{
		order: []string{"time", "latitude", "longitude", "wind_dir"},
		vars: map[string]*fakeVar{
			"time":      {values: []float64{0, 3600}, dims: []string{"time"}, attrs: newFakeAttrs(), typ: "double"},
			"latitude":  {values: []float32{55.9}, dims: []string{"latitude"}, attrs: newFakeAttrs(), typ: "float"},
			"longitude": {values: []float32{-142.6}, dims: []string{"longitude"}, attrs: newFakeAttrs(), typ: "float"},
			"wind_dir": {
				values: [][][]float32{{{120}}, {{135}}},
				dims:   []string{"time", "latitude", "longitude"},
				attrs: newFakeAttrs(
					"units", "degrees_true",
					"long_name", "Wind Direction",
					"missing_value", float32(999),
					"scale_factor", float32(1),
				),
				typ: "float",
			},
		},
	}
}

func TestDecodeGroup(t *testing.T) {
	Convey("Given a 2x1x1 file with one wind_dir variable", t, func() {
		ds, err := decodeGroup(windGroup())
		So(err, ShouldBeNil)

		Convey("Then the table has one row per (time, lat, lon) triple", func() {
			So(ds.Rows, ShouldEqual, 2)
			So(ds.TimeCount, ShouldEqual, 2)
			So(ds.LatCount, ShouldEqual, 1)
			So(ds.LonCount, ShouldEqual, 1)
			So(ds.Columns(), ShouldResemble, []string{"time", "lat", "lon", "wind_dir"})
		})

		Convey("Then epoch seconds canonicalize to ISO-8601 UTC", func() {
			So(ds.Data["time"].Strings, ShouldResemble,
				[]string{"1970-01-01T00:00:00Z", "1970-01-01T01:00:00Z"})
		})

		Convey("Then coordinates broadcast across every row", func() {
			So(ds.Data["lat"].Floats, ShouldHaveLength, 2)
			So(ds.Data["lat"].Floats[0], ShouldAlmostEqual, 55.9, 0.001)
			So(ds.Data["lat"].Floats[1], ShouldAlmostEqual, 55.9, 0.001)
			So(ds.Data["lon"].Floats[0], ShouldAlmostEqual, -142.6, 0.001)
		})

		Convey("Then the variable metadata is collected", func() {
			m := ds.Meta["wind_dir"]
			So(m.Name, ShouldEqual, "wind_dir")
			So(m.Precision, ShouldEqual, "float")
			So(m.Units, ShouldEqual, "degrees_true")
			So(m.LongName, ShouldEqual, "Wind Direction")
			So(m.MissingValue, ShouldEqual, "999")
			So(m.HasScaleFactor, ShouldBeTrue)
			So(m.HasAddOffset, ShouldBeFalse)
		})

		Convey("Then nested variable arrays flatten in storage order", func() {
			So(ds.Data["wind_dir"].Floats, ShouldResemble, []float64{120, 135})
		})
	})
}

func TestDecodeGroupBroadcastOrder(t *testing.T) {
	Convey("Given T=2 times, Y=3 lats, X=4 lons", t, func() {
		values := make([]float64, 24)
		for i := range values {
			values[i] = float64(i)
		}
		g := &fakeGroup{
			order: []string{"time", "lat", "lon", "speed"},
			vars: map[string]*fakeVar{
				"time":  {values: []int32{0, 60}, attrs: newFakeAttrs(), typ: "int"},
				"lat":   {values: []float64{10, 20, 30}, attrs: newFakeAttrs(), typ: "double"},
				"lon":   {values: []float64{1, 2, 3, 4}, attrs: newFakeAttrs(), typ: "double"},
				"speed": {values: values, attrs: newFakeAttrs(), typ: "double"},
			},
		}

		ds, err := decodeGroup(g)
		So(err, ShouldBeNil)

		Convey("Then there are exactly T*Y*X rows", func() {
			So(ds.Rows, ShouldEqual, 24)
		})

		Convey("Then time forms contiguous blocks of Y*X rows", func() {
			for i := 0; i < 12; i++ {
				So(ds.Data["time"].Strings[i], ShouldEqual, "1970-01-01T00:00:00Z")
				So(ds.Data["time"].Strings[12+i], ShouldEqual, "1970-01-01T00:01:00Z")
			}
		})

		Convey("Then (time, lat) forms blocks of X rows with lon varying fastest", func() {
			lats := ds.Data["lat"].Floats
			lons := ds.Data["lon"].Floats
			for row := 0; row < 24; row++ {
				So(lats[row], ShouldEqual, []float64{10, 20, 30}[(row/4)%3])
				So(lons[row], ShouldEqual, []float64{1, 2, 3, 4}[row%4])
			}
		})
	})
}

func TestDecodeGroupISOStringTimes(t *testing.T) {
	Convey("Given a file whose time coordinate is ISO-8601 strings", t, func() {
		g := &fakeGroup{
			order: []string{"time", "lat", "lon", "sea_temp"},
			vars: map[string]*fakeVar{
				"time":     {values: []string{"2008-06-01 12:00:00"}, attrs: newFakeAttrs(), typ: "string"},
				"lat":      {values: []float64{1}, attrs: newFakeAttrs(), typ: "double"},
				"lon":      {values: []float64{2}, attrs: newFakeAttrs(), typ: "double"},
				"sea_temp": {values: []float64{17.5}, attrs: newFakeAttrs(), typ: "double"},
			},
		}

		ds, err := decodeGroup(g)
		So(err, ShouldBeNil)

		Convey("Then stamps are canonicalized to the Z-suffixed form", func() {
			So(ds.Data["time"].Strings, ShouldResemble, []string{"2008-06-01T12:00:00Z"})
		})
	})
}

func TestDecodeGroupMissingCoordinate(t *testing.T) {
	g := &fakeGroup{
		order: []string{"lat", "lon"},
		vars: map[string]*fakeVar{
			"lat": {values: []float64{1}, attrs: newFakeAttrs(), typ: "double"},
			"lon": {values: []float64{2}, attrs: newFakeAttrs(), typ: "double"},
		},
	}
	if _, err := decodeGroup(g); err == nil {
		t.Fatal("expected an error for a file without a time coordinate")
	}
}
