//go:build windows

package ui

import (
	"runtime"
	"strings"
	"unicode/utf16"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"
)

const (
	mbOK              = 0x00000000
	mbYesNo           = 0x00000004
	mbIconWarning     = 0x00000030
	mbIconQuestion    = 0x00000020
	mbSetForeground   = 0x00010000
	idYes             = 6
	ofnNoChangeDir    = 0x00000008
	ofnPathMustExist  = 0x00000800
	ofnFileMustExist  = 0x00001000
	ofnExplorer       = 0x00080000
	bifReturnOnlyDirs = 0x00000001
	bifNewDialogStyle = 0x00000040
	maxPathBuffer     = 32768
)

var (
	modcomdlg32           = windows.NewLazySystemDLL("comdlg32.dll")
	modshell32            = windows.NewLazySystemDLL("shell32.dll")
	moduser32             = windows.NewLazySystemDLL("user32.dll")
	procGetOpenFileNameW  = modcomdlg32.NewProc("GetOpenFileNameW")
	procSHBrowseForFolder = modshell32.NewProc("SHBrowseForFolderW")
	procSHGetPathFromID   = modshell32.NewProc("SHGetPathFromIDListW")
	procSetDPIAware       = moduser32.NewProc("SetProcessDPIAware")
)

// OPENFILENAMEW
type openFileName struct {
	structSize    uint32
	owner         uintptr
	instance      uintptr
	filter        *uint16
	customFilter  *uint16
	maxCustFilter uint32
	filterIndex   uint32
	file          *uint16
	maxFile       uint32
	fileTitle     *uint16
	maxFileTitle  uint32
	initialDir    *uint16
	title         *uint16
	flags         uint32
	fileOffset    uint16
	fileExtension uint16
	defExt        *uint16
	custData      uintptr
	hook          uintptr
	templateName  *uint16
	reserved      uintptr
	reserved2     uint32
	flagsEx       uint32
}

// BROWSEINFOW
type browseInfo struct {
	owner       uintptr
	root        uintptr
	displayName *uint16
	title       *uint16
	flags       uint32
	callback    uintptr
	param       uintptr
	image       int32
}

// NativeDialog shows Win32 message boxes and common dialogs.
type NativeDialog struct {
	log *zerolog.Logger
}

// NewNativeDialog creates a dialog backed by the Win32 shell. The process
// is marked DPI aware so dialogs are not bitmap-scaled.
func NewNativeDialog(log *zerolog.Logger) Dialog {
	if err := procSetDPIAware.Find(); err == nil {
		procSetDPIAware.Call()
	}
	return &NativeDialog{log: log}
}

// Native reports whether NewNativeDialog shows windowed dialogs.
func Native() bool {
	return true
}

// Alert implements Dialog.Alert with a warning message box.
func (d *NativeDialog) Alert(title, text string) {
	if _, err := messageBox(title, text, mbOK|mbIconWarning); err != nil {
		d.warn("alert", err)
	}
}

// Confirm implements Dialog.Confirm with a Yes/No message box.
func (d *NativeDialog) Confirm(title, text string) bool {
	ret, err := messageBox(title, text, mbYesNo|mbIconQuestion)
	if err != nil {
		d.warn("confirm", err)
		return false
	}
	return ret == idYes
}

// PickFile implements Dialog.PickFile with the common Open dialog.
func (d *NativeDialog) PickFile(title string, exts []string) (string, bool) {
	buf := make([]uint16, maxPathBuffer)
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		d.warn("pick file", err)
		return "", false
	}

	filter := fileFilter(exts)
	ofn := openFileName{
		filter:  &filter[0],
		file:    &buf[0],
		maxFile: uint32(len(buf)),
		title:   titlePtr,
		flags:   ofnExplorer | ofnFileMustExist | ofnPathMustExist | ofnNoChangeDir,
	}
	ofn.structSize = uint32(unsafe.Sizeof(ofn))

	ret, _, _ := procGetOpenFileNameW.Call(uintptr(unsafe.Pointer(&ofn)))
	if ret == 0 {
		// cancelled or failed; CommDlgExtendedError would tell which
		return "", false
	}

	path := windows.UTF16ToString(buf)
	return path, path != ""
}

// PickDirectory implements Dialog.PickDirectory with the shell folder browser.
func (d *NativeDialog) PickDirectory(title string) (string, bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err == nil {
		defer windows.CoUninitialize()
	}

	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		d.warn("pick directory", err)
		return "", false
	}

	display := make([]uint16, windows.MAX_PATH)
	bi := browseInfo{
		displayName: &display[0],
		title:       titlePtr,
		flags:       bifReturnOnlyDirs | bifNewDialogStyle,
	}

	pidl, _, _ := procSHBrowseForFolder.Call(uintptr(unsafe.Pointer(&bi)))
	if pidl == 0 {
		return "", false
	}
	defer windows.CoTaskMemFree(unsafe.Pointer(pidl))

	buf := make([]uint16, maxPathBuffer)
	ok, _, _ := procSHGetPathFromID.Call(pidl, uintptr(unsafe.Pointer(&buf[0])))
	if ok == 0 {
		return "", false
	}

	path := windows.UTF16ToString(buf)
	return path, path != ""
}

func (d *NativeDialog) warn(what string, err error) {
	if d.log != nil {
		d.log.Warn().Err(err).Str("dialog", what).Msg("failed to show dialog")
	}
}

func messageBox(title, text string, style uint32) (int32, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	textPtr, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return 0, err
	}
	return windows.MessageBox(0, textPtr, titlePtr, style|mbSetForeground)
}

// fileFilter builds a double-NUL terminated filter list such as
// "Executable (*.exe)\0*.exe\0\0".
func fileFilter(exts []string) []uint16 {
	var b strings.Builder
	if len(exts) > 0 {
		patterns := make([]string, len(exts))
		for i, ext := range exts {
			patterns[i] = "*" + ext
		}
		joined := strings.Join(patterns, ";")
		b.WriteString("Executable (" + joined + ")\x00" + joined + "\x00")
	}
	b.WriteString("All files (*.*)\x00*.*\x00\x00")
	return utf16.Encode([]rune(b.String()))
}
