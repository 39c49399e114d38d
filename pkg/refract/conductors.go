package refract

// Tabulated conductor (n, k) data sampled across the visible range,
// from the measured dispersion curves for gold, aluminum and copper
// (Johnson & Christy / Rakic); coarse enough to keep the tables small
// while the piecewise-linear interpolation in Table.N/K smooths them
// out.
var Gold = Table{
	LambdaNM: []float64{380, 450, 500, 550, 600, 650, 700, 750, 780},
	NValues:  []float64{1.66, 1.36, 0.84, 0.37, 0.27, 0.23, 0.18, 0.16, 0.15},
	KValues:  []float64{1.96, 1.91, 1.87, 2.30, 2.80, 3.20, 3.55, 3.80, 3.95},
}

var Aluminum = Table{
	LambdaNM: []float64{380, 450, 500, 550, 600, 650, 700, 750, 780},
	NValues:  []float64{0.37, 0.49, 0.62, 0.78, 0.96, 1.16, 1.34, 1.50, 1.55},
	KValues:  []float64{4.40, 4.70, 4.90, 5.10, 5.35, 5.55, 5.75, 5.90, 6.00},
}

var Copper = Table{
	LambdaNM: []float64{380, 450, 500, 550, 600, 650, 700, 750, 780},
	NValues:  []float64{1.10, 1.17, 1.04, 0.63, 0.29, 0.22, 0.20, 0.21, 0.22},
	KValues:  []float64{2.30, 2.30, 2.45, 2.60, 3.10, 3.50, 3.85, 4.10, 4.25},
}
