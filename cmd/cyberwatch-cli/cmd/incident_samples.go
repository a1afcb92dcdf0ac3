package cmd

// Sample incidents written by "incident seed". Titles and descriptions are
// paired by index.
var sampleTitles = []string{
	"Acceso no autorizado a servidor de archivos",
	"Detección de malware en estación de trabajo",
	"Intento de phishing reportado por usuario",
	"Tráfico sospechoso hacia dominio externo",
	"Actividad anómala en cuenta de administrador",
	"Escaneo de puertos detectado en red interna",
	"Ransomware bloqueado por EDR",
	"Exfiltración de datos potencial detectada",
	"Credenciales comprometidas en Dark Web",
	"Ataque DDoS en servidor web",
	"Inyección SQL bloqueada en aplicación web",
	"Modificación no autorizada de archivos críticos",
	"Proceso sospechoso ejecutado en servidor",
	"Múltiples intentos de inicio de sesión fallidos",
	"Dispositivo USB no autorizado conectado",
	"Tráfico cifrado inusual detectado",
	"Cambio de permisos no autorizado en Active Directory",
	"Comunicación con servidor C2 detectada",
	"Vulnerabilidad crítica detectada en sistema",
	"Acceso SSH desde ubicación inusual",
	"Movimiento lateral detectado en la red",
	"Ejecución de script PowerShell sospechoso",
	"Archivo malicioso en correo electrónico bloqueado",
}

var sampleDescriptions = []string{
	"Se detectó un acceso no autorizado utilizando credenciales válidas fuera del horario laboral.",
	"El EDR identificó un archivo ejecutable sospechoso que intentaba establecer persistencia.",
	"Usuario reportó correo electrónico con enlace sospechoso simulando ser del departamento de IT.",
	"El firewall registró múltiples conexiones salientes a un dominio de reputación dudosa.",
	"Se observó actividad inusual en cuenta con privilegios elevados durante horas no habituales.",
	"NMAP detectó escaneo de puertos TCP en rango de servidores críticos.",
	"El antivirus bloqueó un intento de cifrado masivo de archivos en directorio compartido.",
	"Se detectó transferencia de gran volumen de datos hacia servicios cloud no autorizados.",
	"Monitoreo de Dark Web identificó credenciales corporativas en venta en foro underground.",
	"Servidor web experimentó súbito incremento de tráfico desde múltiples IPs distribuidas.",
	"WAF bloqueó múltiples intentos de inyección SQL en formulario de login de aplicación.",
	"Sistema de integridad detectó modificación de archivos de configuración en servidor.",
	"Análisis de comportamiento identificó proceso desconocido consumiendo recursos anormales.",
	"Sistema detectó 47 intentos fallidos de autenticación desde IPs internacionales.",
	"DLP alertó sobre conexión de dispositivo de almacenamiento no registrado en política.",
	"Análisis de red identificó tráfico TLS anómalo con certificado auto-firmado sospechoso.",
	"Auditoría de AD reveló modificación de permisos de grupo sin ticket de cambio aprobado.",
	"IDS identificó patrón de comunicación característico de malware conocido hacia IP externa.",
	"Escaneo de vulnerabilidades identificó CVE crítico sin parche en servidor expuesto.",
	"Sistema SIEM correlacionó acceso SSH desde país no habitual con horario inusual.",
	"EDR detectó intentos de conexión RDP desde estación comprometida hacia múltiples servidores.",
	"Script PowerShell obfuscado intentó descargar payload desde dominio recién registrado.",
	"Gateway de correo bloqueó adjunto con extensión doble y contenido malicioso confirmado.",
}

var sampleSources = []string{"EDR", "Firewall", "SIEM", "Alerta SIEM", "Correo", "Usuario", "Detección automática"}
