package main

import (
	"encoding/base64"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/crossroad-sim/task"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 模拟任务名，主要用于日志标识
	job = flag.String("job", "job0", "the name of the whole simulation task")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 实时模式：每步推进后按配置的步长间隔休眠，使仿真时间与墙上时钟对齐
	realtime = flag.Bool("realtime", false, "throttle each step to the configured interval")
	// 被观察车辆ID列表，逗号分隔，心跳日志时输出其详细状态
	watch = flag.String("watch", "", "comma separated car ids to dump on heartbeat, e.g. 1,5,9")

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
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "crossroad")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	}
	if file != nil {
		if err := yaml.UnmarshalStrict(file, &c); err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else {
		// 未指定配置时使用内置默认值
		c = config.Default()
	}
	log.Infof("%+v", c)

	t := task.NewContext(*job, c)
	if *watch != "" {
		ids := make([]int32, 0)
		for _, s := range strings.Split(*watch, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
			if err != nil {
				log.Panicf("watch id parse err: %v", err)
			}
			ids = append(ids, int32(id))
		}
		t.SetWatch(ids)
	}

	if *realtime {
		interval := time.Duration(t.Clock().DT * float64(time.Second))
		for t.Step() {
			time.Sleep(interval)
		}
		t.Close()
	} else {
		t.Run()
	}
}
