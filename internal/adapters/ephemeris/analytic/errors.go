package analytic

import (
	"errors"
	"fmt"

	"github.com/okian/kpastro/internal/domain/types"
)

// ErrPolarLatitude is returned when a quadrant house system is asked for a latitude where
// semi-arcs stop being defined.
var ErrPolarLatitude = fmt.Errorf("latitude beyond polar circle: %w", types.ErrInvalidInput)

// ErrKeplerDiverged reports an eccentric-anomaly iteration that failed to settle.
var ErrKeplerDiverged = errors.New("kepler iteration did not converge")
