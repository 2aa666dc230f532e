package lifecycle

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Keys read by LoadEnvOptions
const (
	EnvValidation              = "D3DSHARE_VALIDATION"
	EnvExternallySynchronized  = "D3DSHARE_EXTERNALLY_SYNCHRONIZED"
	EnvApplicationName         = "D3DSHARE_APPLICATION_NAME"
	EnvExtraLayers             = "D3DSHARE_EXTRA_LAYERS"
	EnvExtraInstanceExtensions = "D3DSHARE_EXTRA_INSTANCE_EXTENSIONS"
)

// LoadEnvOptions applies the settings in a dotenv file on top of base. The process environment
// is neither read nor modified. A missing file leaves base unchanged.
func LoadEnvOptions(path string, base CreateOptions) (CreateOptions, error) {
	values, err := godotenv.Read(path)
	if os.IsNotExist(err) {
		return base, nil
	}
	if err != nil {
		return base, errors.Wrapf(err, "reading %s", path)
	}

	return ApplyEnv(values, base)
}

// ApplyEnv applies dotenv-style settings on top of base
func ApplyEnv(values map[string]string, base CreateOptions) (CreateOptions, error) {
	options := base

	err := applyFlag(values, EnvValidation, CreateEnableValidation, &options.Flags)
	if err != nil {
		return base, err
	}
	err = applyFlag(values, EnvExternallySynchronized, CreateExternallySynchronized, &options.Flags)
	if err != nil {
		return base, err
	}

	if name, ok := values[EnvApplicationName]; ok {
		options.ApplicationName = strings.TrimSpace(name)
	}
	if layers, ok := values[EnvExtraLayers]; ok {
		options.Layers = append(append([]string(nil), options.Layers...), splitList(layers)...)
	}
	if extensions, ok := values[EnvExtraInstanceExtensions]; ok {
		options.InstanceExtensions = append(append([]string(nil), options.InstanceExtensions...), splitList(extensions)...)
	}

	return options, nil
}

func applyFlag(values map[string]string, key string, flag CreateFlags, flags *CreateFlags) error {
	value, ok := values[key]
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}

	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return errors.Wrapf(err, "%s must be a boolean", key)
	}

	if enabled {
		*flags |= flag
	} else {
		*flags &^= flag
	}
	return nil
}

func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			list = append(list, item)
		}
	}
	return list
}
