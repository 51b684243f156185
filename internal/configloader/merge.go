package configloader

import "github.com/yaklabco/blockmark/pkg/config"

// merge combines two configurations, with override taking precedence over base:
//   - pointer fields: override wins when set, so an explicit false is kept
//   - strings and ints: override wins when non-zero
//   - slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	result.Pretty = pick(base.Pretty, override.Pretty)
	result.SourceIndices = pick(base.SourceIndices, override.SourceIndices)
	result.DetectLanguage = pick(base.DetectLanguage, override.DetectLanguage)
	result.Inline.Typographics = pick(base.Inline.Typographics, override.Inline.Typographics)
	result.Inline.HardWraps = pick(base.Inline.HardWraps, override.Inline.HardWraps)

	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	// Staged can only be switched on from a higher layer.
	if override.Staged {
		result.Staged = true
	}

	return &result
}

func pick(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
