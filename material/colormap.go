package material

import "fmt"

// colormapTable is a fixed set of RGB stops, evenly spaced over [0, 1],
// a stable subset of Matplotlib's perceptually-uniform maps. Sampling
// never uses a parametric/polynomial fit — only linear interpolation
// between frozen stops — so that a scalar landing exactly on a stop
// reproduces that stop's color exactly, including the table endpoints.
type colormapTable [9][3]float32

var colormapTables = map[string]colormapTable{
	"viridis": {
		{0.267004, 0.004874, 0.329415},
		{0.282623, 0.140926, 0.457517},
		{0.253935, 0.265254, 0.529983},
		{0.206756, 0.371758, 0.553117},
		{0.163625, 0.471133, 0.558148},
		{0.127568, 0.566949, 0.550556},
		{0.134692, 0.658636, 0.517649},
		{0.477504, 0.821444, 0.318195},
		{0.993248, 0.906157, 0.143936},
	},
	"plasma": {
		{0.050383, 0.029803, 0.527975},
		{0.286783, 0.010855, 0.627295},
		{0.470799, 0.007624, 0.653659},
		{0.628993, 0.043328, 0.622424},
		{0.769842, 0.144936, 0.541602},
		{0.885423, 0.257912, 0.427666},
		{0.966798, 0.404322, 0.288559},
		{0.994066, 0.624957, 0.155311},
		{0.940015, 0.975158, 0.131326},
	},
	"inferno": {
		{0.001462, 0.000466, 0.013866},
		{0.135137, 0.049132, 0.309088},
		{0.339287, 0.052590, 0.451379},
		{0.548051, 0.098619, 0.412039},
		{0.735683, 0.164519, 0.313829},
		{0.881443, 0.257464, 0.194037},
		{0.964897, 0.409643, 0.077880},
		{0.985893, 0.635737, 0.101815},
		{0.988362, 0.998364, 0.644924},
	},
	"magma": {
		{0.001462, 0.000466, 0.013866},
		{0.130964, 0.061868, 0.298963},
		{0.328216, 0.070553, 0.481778},
		{0.522470, 0.126452, 0.514189},
		{0.716387, 0.214982, 0.474720},
		{0.882686, 0.312952, 0.417853},
		{0.972590, 0.462229, 0.427530},
		{0.994738, 0.699873, 0.516916},
		{0.987053, 0.991438, 0.749504},
	},
	"cividis": {
		{0.000000, 0.135112, 0.304751},
		{0.000000, 0.219764, 0.410526},
		{0.203608, 0.303458, 0.416694},
		{0.373238, 0.392382, 0.417901},
		{0.512781, 0.484261, 0.407038},
		{0.658341, 0.579246, 0.383345},
		{0.812061, 0.677640, 0.343800},
		{0.943467, 0.789530, 0.293999},
		{0.995737, 0.909344, 0.217772},
	},
}

// ValidColormap reports whether name is one of the five recognized
// colormap identifiers.
func ValidColormap(name string) bool {
	_, ok := colormapTables[name]
	return ok
}

// SampleColormap samples the named colormap at normalized parameter t.
// t is expected to already be clamped or otherwise resolved by the caller
// (the color-mapping pass of the render orchestrator); this function does
// not range-check t: t >= 1 returns the last stop and t < 0 extrapolates
// linearly from the first two stops. It returns an error for an
// unrecognized colormap name.
func SampleColormap(name string, t float32) (RGBA, error) {
	table, ok := colormapTables[name]
	if !ok {
		return RGBA{}, fmt.Errorf("unrecognized colormap %q", name)
	}
	n := len(table)
	pos := t * float32(n-1)
	i0 := int(pos)
	if i0 < 0 {
		i0 = 0
	}
	if i0 >= n-1 {
		return RGBA{table[n-1][0], table[n-1][1], table[n-1][2], 1}, nil
	}
	frac := pos - float32(i0)
	c0, c1 := table[i0], table[i0+1]
	r := c0[0] + frac*(c1[0]-c0[0])
	g := c0[1] + frac*(c1[1]-c0[1])
	b := c0[2] + frac*(c1[2]-c0[2])
	return RGBA{r, g, b, 1}, nil
}
