package ports

// Regressor is a trained regression model. Features lists the input columns
// in the order Predict expects them; Predict receives one such vector per row
// and returns one value per row. Implementations must be safe for concurrent
// use and free of side effects.
type Regressor interface {
	Predict(rows [][]float64) ([]float64, error)
	Features() []string
}
