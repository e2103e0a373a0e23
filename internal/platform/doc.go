// Package platform hides the operating-system specific parts of lovekit:
// permission bits (a no-op on Windows) and handing a directory to the
// desktop file manager or to an editor.
package platform
