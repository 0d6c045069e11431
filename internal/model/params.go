package model

// Parameters exported from the trained StandardScaler + LassoCV pipeline
// over the diabetes dataset. Checked into source as auditable tables so
// the production path has no file or deserialization dependency.

var featureMeans = []float64{
	-1.44429466e-18,
	2.54321451e-18,
	-2.25592546e-16,
	-4.85408596e-17,
	-1.42859580e-17,
	3.89881064e-17,
	-6.02836031e-18,
	-1.78809958e-17,
	9.24348582e-17,
	1.35176953e-17,
}

var featureScales = []float64{
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
	0.04756515,
}

var modelCoefficients = []float64{
	-0.30892106,
	-11.22504613,
	24.81684888,
	15.27130382,
	-27.08540992,
	14.38623131,
	0.0,
	6.83504132,
	31.86497214,
	3.17904105,
}

const modelIntercept = 152.13348416289594

// Embedded builds the artifact from the checked-in parameter tables.
func Embedded() (*Artifact, error) {
	return New(featureMeans, featureScales, modelCoefficients, modelIntercept)
}
