// 十字路口仿真的可视化界面
// 功能：以俯视视角实时绘制路口、信号灯与车辆，每帧推进一步仿真
// 操作说明：
//   - 1/2/3 切换镜头（全景/跟车/特写）
//   - N 切换夜景
//   - L 开关信号灯（关闭后所有进口道恒为绿灯）
//   - 鼠标左键拖拽平移，滚轮缩放
package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/crossroad-sim/task"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径，缺省时使用内置默认值
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 街景装饰的随机种子
	seed = flag.Uint64("seed", 20260829, "random seed for the decorative scenery")

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
	logLevel = flag.String("log.level", "warn", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "viewer")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
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
		c = config.Default()
	}

	ctx := task.NewContext("viewer", c)
	g := NewGame(ctx, *seed)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("crossroad-sim viewer")
	if err := ebiten.RunGame(g); err != nil {
		log.Panicf("run game err: %v", err)
	}
}
