// Package regression reports the quality of quartic fits.
//
// Analyze fits one sample set through a gaussfit.Fitter and wraps the
// coefficients in a Model carrying R², RMSE and a readable formula.
// AnalyzeEach does the same per set, which makes drift between
// calibration runs visible:
//
//	models, err := regression.AnalyzeEach(runs, regression.WithRescale())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, m := range models {
//	    fmt.Printf("run %d: %s (R²=%.4f)\n", i, m.Formula, m.RSquared)
//	}
//
// # Model Types
//
//   - quartic: y = c0 + c1*x + c2*x² + c3*x³ + c4*x⁴
//   - scaled_quartic: the same polynomial in u = (x - center) / halfWidth,
//     produced by WithRescale for sets whose x values lie outside [-1, 1]
//
// Estimators can be rebuilt from stored coefficients with NewEstimator.
package regression
