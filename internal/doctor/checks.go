package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/conn-castle/electron-rebuild/internal/config"
	"github.com/conn-castle/electron-rebuild/internal/headers"
	"github.com/conn-castle/electron-rebuild/internal/locate"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
)

var (
	lookPath       = exec.LookPath
	osStat         = os.Stat
	loadConfigFunc = config.Load
)

// CheckConfig loads the config file at path. The returned config is nil on failure.
func CheckConfig(path string) (Result, *config.Config) {
	cfg, found, err := loadConfigFunc(path)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: messages.DoctorConfigLoadRecommend,
		}, nil
	}
	format := messages.DoctorConfigLoadedFmt
	if !found {
		format = messages.DoctorConfigAbsentFmt
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNameConfig, Message: fmt.Sprintf(format, path)}, cfg
}

// CheckTools verifies that node, npm, and node-gyp can be started.
// Configured scripts are run through node, so only their readability is checked.
func CheckTools(tools config.Tools) []Result {
	node := tools.Node
	if node == "" {
		node = procrun.DefaultNode
	}
	return []Result{
		checkExecutable("node", node),
		checkTool("npm", tools.NPMCli),
		checkTool("node-gyp", tools.NodeGyp),
	}
}

func checkTool(name string, script string) Result {
	if script == "" {
		return checkExecutable(name, name)
	}
	if _, err := osStat(script); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameTools,
			Message:        fmt.Sprintf(messages.DoctorToolScriptMissingFmt, name, script, err),
			Recommendation: messages.DoctorToolMissingRecommend,
		}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNameTools, Message: fmt.Sprintf(messages.DoctorToolFoundFmt, name, script)}
}

func checkExecutable(name string, executable string) Result {
	resolved, err := lookPath(executable)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameTools,
			Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, name, err),
			Recommendation: messages.DoctorToolMissingRecommend,
		}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNameTools, Message: fmt.Sprintf(messages.DoctorToolFoundFmt, name, resolved)}
}

// CheckModuleDir verifies that dir exists and is a directory.
func CheckModuleDir(dir string) Result {
	info, err := osStat(dir)
	if err == nil && !info.IsDir() {
		err = fmt.Errorf(messages.ModuleDirNotDirectoryFmt, dir)
	}
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameModuleDir,
			Message:        fmt.Sprintf(messages.DoctorModuleDirFailedFmt, err),
			Recommendation: messages.DoctorModuleDirRecommend,
		}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNameModuleDir, Message: fmt.Sprintf(messages.DoctorModuleDirOKFmt, dir)}
}

// CheckPrebuilt verifies the prebuilt package names an executable that exists.
// A missing package is a warning: --node-module-version still allows a decision.
func CheckPrebuilt(prebuiltDir string) Result {
	if prebuiltDir == "" {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNamePrebuilt,
			Message:        messages.DoctorPrebuiltMissing,
			Recommendation: messages.DoctorPrebuiltRecommend,
		}
	}
	exe, found, err := locate.ResolveExecutable(prebuiltDir)
	if err == nil && !found {
		err = fmt.Errorf(messages.DoctorPrebuiltPathFileFmt, locate.PathFileName, prebuiltDir)
	}
	if err == nil {
		_, err = osStat(exe)
		if err != nil {
			err = fmt.Errorf(messages.DoctorPrebuiltExecutableBadFmt, exe, err)
		}
	}
	if err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNamePrebuilt,
			Message:        err.Error(),
			Recommendation: messages.DoctorPrebuiltRecommend,
		}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNamePrebuilt, Message: fmt.Sprintf(messages.DoctorPrebuiltExecutableFmt, exe)}
}

// CheckHeaders reports whether headers for version are cached in dir (empty = default dir).
func CheckHeaders(dir string, version string) Result {
	if version == "" {
		return Result{Status: StatusWarn, CheckName: messages.DoctorCheckNameHeaders, Message: messages.DoctorHeadersNoVersion}
	}
	resolved, err := headers.ResolveDir(dir)
	if err != nil {
		return Result{Status: StatusFail, CheckName: messages.DoctorCheckNameHeaders, Message: err.Error()}
	}
	resolved = filepath.Clean(resolved)
	if (headers.Cache{Dir: resolved}).Installed(version) {
		return Result{Status: StatusOK, CheckName: messages.DoctorCheckNameHeaders, Message: fmt.Sprintf(messages.DoctorHeadersInstalledFmt, version, resolved)}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameHeaders,
		Message:        fmt.Sprintf(messages.DoctorHeadersMissingFmt, version, resolved),
		Recommendation: messages.DoctorHeadersRecommend,
	}
}
