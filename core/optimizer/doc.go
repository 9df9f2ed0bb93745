// Package optimizer computes a cost-minimal battery charge/discharge and
// grid import/export schedule over a discrete horizon. Each call builds one
// continuous linear program from the forecast, the market prices and the
// battery configuration, solves it with gonum's simplex implementation and
// decodes the solution into labelled per-slot schedule entries. Calls are
// stateless and independent, so concurrent solves need no coordination.
package optimizer
