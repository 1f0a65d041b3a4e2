// Package kinematics assigns four-momenta to decay products.
//
// The [Redistributor] performs a bounded randomized search: every iteration
// it either re-samples an isotropic direction with an equal share of the
// remaining energy or jitters the previous momentum by up to 5%, closes the
// 3-momentum exactly on the last product, and stops once the summed energy
// and momentum match the parent within tolerance.
//
// The iteration ceiling is the only termination guarantee; exhausting it is
// reported through [Result.Converged], never as an error.
package kinematics
