package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/tsinghua-fib-lab/intersim/output"
	"github.com/tsinghua-fib-lab/intersim/policy"
	"github.com/tsinghua-fib-lab/intersim/task"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径
	configPath string
	// 配置文件Base64编码后的数据
	configData string

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel string

	log = logrus.WithField("module", "intersim")
)

func main() {
	root := &cobra.Command{
		Use:           "intersim",
		Short:         "Two-way signalized intersection simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetFormatter(&easy.Formatter{
				TimestampFormat: "2006-01-02 15:04:05.0000",
				LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
			})
			level, ok := logLevels[logLevel]
			if !ok {
				return fmt.Errorf("log.level must be one of %v", logLevels)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&configData, "config-data", "", "config file base64 encoded data")
	root.PersistentFlags().StringVar(&logLevel, "log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")
	// 各包通过flag注册的运行参数（如rand.seed_offset、log.heartbeat_interval）
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newRunCmd(), newConfigCmd())
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

// loadConfig 获取配置：配置文件优先，其次Base64数据，均未指定时使用默认配置
func loadConfig() (config.Config, error) {
	var file []byte
	var err error
	switch {
	case configPath != "":
		if file, err = os.ReadFile(configPath); err != nil {
			return config.Config{}, fmt.Errorf("config file load err: %w", err)
		}
	case configData != "":
		if file, err = base64.StdEncoding.DecodeString(configData); err != nil {
			return config.Config{}, fmt.Errorf("config data load err: %w", err)
		}
	default:
		log.Info("no config specified, use defaults")
		return config.Default(), nil
	}
	return config.Load(file)
}

func newRunCmd() *cobra.Command {
	var (
		episodes   int32
		seed       uint64
		policyName string
		traceFile  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run headless episodes and report wait, throughput and emissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("episodes") {
				c.Control.Episodes = episodes
			}
			if flags.Changed("seed") {
				c.Control.Seed = seed
			}
			if flags.Changed("policy") {
				c.Control.Policy.Name = policyName
			}
			if flags.Changed("trace") {
				c.Output.TraceFile = traceFile
			}
			log.Infof("%+v", c)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, c)
		},
	}
	cmd.Flags().Int32Var(&episodes, "episodes", 1, "number of episodes")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&policyName, "policy", "rule", fmt.Sprintf("signal policy %v", policy.Names()))
	cmd.Flags().StringVar(&traceFile, "trace", "", "msgpack step trace output path")
	return cmd
}

func run(ctx context.Context, c config.Config) error {
	var recorder output.IEpisodeRecorder = output.Discard{}
	if c.Output.URI != "" {
		r, err := output.NewMongoRecorder(ctx, c.Output.URI, c.Output.DB, c.Output.Col)
		if err != nil {
			return err
		}
		recorder = r
	}
	var trace *output.TraceWriter
	if c.Output.TraceFile != "" {
		w, err := output.CreateTraceFile(c.Output.TraceFile)
		if err != nil {
			_ = recorder.Close(context.Background())
			return err
		}
		trace = w
	}

	t, err := task.NewContext(c, recorder, trace)
	if err != nil {
		_ = recorder.Close(context.Background())
		if trace != nil {
			_ = trace.Close()
		}
		return err
	}
	_, runErr := t.Run(ctx)
	if err := t.Close(context.Background()); err != nil {
		log.Errorf("close outputs: %v", err)
	}
	return runErr
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(c)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
