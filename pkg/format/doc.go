// Package format turns database rows into the shapes the dashboard
// front end expects.
//
// # Keys
//
// Feature columns are renamed to front end translation keys with
// [RenameKeys], for example "rolling_load" becomes
// "lges.feature.operating.rollingLoad". Columns without a translation
// pass through unchanged.
//
// # Parts
//
// Motors of an equipment are grouped into four detail pages (positive
// cutting, negative cutting, lamination roll, final cutting). The motor
// numbers of each page depend on the line the equipment belongs to, see
// [PartMotors].
//
// # Time
//
// Acquisition times leave the server as unix milliseconds rendered as a
// float string, see [UnixMillis].
package format
