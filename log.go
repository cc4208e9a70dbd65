package spyfall

import (
	"github.com/privacybydesign/spyfall/factor"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	factor.Logger = Logger
}
