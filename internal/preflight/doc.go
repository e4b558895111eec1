// Package preflight provides readiness checks for the directories an
// organize run touches.
//
// These checks run in two contexts:
//   - The organizer calls Verify before scanning, so a doomed run fails
//     before any file has been relocated.
//   - The CLI "shelve doctor" command renders RunAll as a table,
//     including advisory results such as destination free space.
package preflight
